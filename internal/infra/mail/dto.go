package mail

import (
	"github.com/xavierca1/creator-deals/internal/entity"
	"gopkg.in/gomail.v2"
)

type OutreachMessage struct {
	OutreachID string
	To         string
	Subject    string
	Body       string
	Number     int // 1 = pitch, 2 = follow-up
}

type ProposalMessage struct {
	OutreachID string
	To         string
	BrandName  string
	Proposal   entity.Proposal
	Note       string
}

type proposalEmailData struct {
	BrandName  string
	SenderName string
	Note       string
	Proposal   entity.Proposal
}

// Dialer é o pedaço do gomail.Dialer que usamos.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From     string
	FromName string
	dialer   Dialer
}
