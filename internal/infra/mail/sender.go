package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var proposalTemplate = template.Must(template.ParseFS(templatesFS, "templates/proposal.html"))

func NewEmailSender(host string, port int, user, password, from, fromName string) *EmailSender {
	return &EmailSender{
		From:     from,
		FromName: fromName,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// NewEmailSenderWithDialer é usado nos testes.
func NewEmailSenderWithDialer(d Dialer, from, fromName string) *EmailSender {
	return &EmailSender{From: from, FromName: fromName, dialer: d}
}

func (s *EmailSender) SendOutreach(ctx context.Context, msg OutreachMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("outreach %s has no recipient", msg.OutreachID)
	}

	m := s.newMessage(msg.To, msg.Subject, msg.OutreachID)
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send outreach email via SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) SendProposal(ctx context.Context, msg ProposalMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	html, err := RenderProposal(msg, s.FromName)
	if err != nil {
		return err
	}

	subject := msg.Proposal.Title
	if subject == "" {
		subject = fmt.Sprintf("Partnership proposal for %s", msg.BrandName)
	}

	m := s.newMessage(msg.To, subject, msg.OutreachID)
	m.SetBody("text/plain", RenderProposalText(msg))
	m.AddAlternative("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send proposal via SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) newMessage(to, subject, outreachID string) *gomail.Message {
	m := gomail.NewMessage()
	if s.FromName != "" {
		m.SetAddressHeader("From", s.From, s.FromName)
	} else {
		m.SetHeader("From", s.From)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetHeader("X-Outreach-ID", outreachID)
	return m
}

func RenderProposal(msg ProposalMessage, senderName string) (string, error) {
	data := proposalEmailData{
		BrandName:  msg.BrandName,
		SenderName: senderName,
		Note:       msg.Note,
		Proposal:   msg.Proposal,
	}

	var body bytes.Buffer
	if err := proposalTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return body.String(), nil
}

// RenderProposalText é a versão texto puro, para clientes sem HTML.
func RenderProposalText(msg ProposalMessage) string {
	p := msg.Proposal
	var b strings.Builder

	if msg.Note != "" {
		b.WriteString(msg.Note + "\n\n")
	}
	b.WriteString(p.Title + "\n\n")
	b.WriteString(p.Summary + "\n\n")
	b.WriteString("Concept\n" + p.Concept + "\n\n")

	b.WriteString("Deliverables\n")
	for _, d := range p.Deliverables {
		qty := d.Quantity
		if qty <= 0 {
			qty = 1
		}
		fmt.Fprintf(&b, "- %dx %s", qty, d.Type)
		if d.Description != "" {
			b.WriteString(": " + d.Description)
		}
		b.WriteString("\n")
	}

	if p.AudienceStats != "" {
		b.WriteString("\nAudience\n" + p.AudienceStats + "\n")
	}
	if len(p.Timeline) > 0 {
		b.WriteString("\nTimeline\n")
		for _, m := range p.Timeline {
			fmt.Fprintf(&b, "- %s", m.Label)
			if m.Date != "" {
				b.WriteString(" (" + m.Date + ")")
			}
			b.WriteString("\n")
		}
	}
	if p.NextSteps != "" {
		b.WriteString("\nNext steps\n" + p.NextSteps + "\n")
	}
	return b.String()
}
