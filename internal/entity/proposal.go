package entity

import (
	"fmt"
	"strings"
)

type ProposalDeliverable struct {
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

type Milestone struct {
	Label string `json:"label"`
	Date  string `json:"date"`
}

// Proposal é o documento estruturado gerado pela IA.
type Proposal struct {
	Title         string                `json:"title"`
	Summary       string                `json:"summary"`
	Concept       string                `json:"concept"`
	Deliverables  []ProposalDeliverable `json:"deliverables"`
	AudienceStats string                `json:"audience_stats,omitempty"`
	Timeline      []Milestone           `json:"timeline,omitempty"`
	NextSteps     string                `json:"next_steps,omitempty"`
}

// Validate rejeita o documento inteiro se faltar algum campo obrigatório.
func (p *Proposal) Validate() error {
	var missing []string
	if strings.TrimSpace(p.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(p.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(p.Concept) == "" {
		missing = append(missing, "concept")
	}
	if len(p.Deliverables) == 0 {
		missing = append(missing, "deliverables")
	}
	for i, d := range p.Deliverables {
		if strings.TrimSpace(d.Type) == "" {
			missing = append(missing, fmt.Sprintf("deliverables[%d].type", i))
		}
	}
	for i, m := range p.Timeline {
		if strings.TrimSpace(m.Label) == "" {
			missing = append(missing, fmt.Sprintf("timeline[%d].label", i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return nil
}

func (p Proposal) Clone() Proposal {
	c := p
	c.Deliverables = append([]ProposalDeliverable(nil), p.Deliverables...)
	c.Timeline = append([]Milestone(nil), p.Timeline...)
	return c
}

// EmailPair é a resposta da geração de rascunhos (email 1 + follow-up).
type EmailPair struct {
	Email1 EmailDraft `json:"email1"`
	Email2 EmailDraft `json:"email2"`
}

func (e *EmailPair) Validate() error {
	var missing []string
	if strings.TrimSpace(e.Email1.Subject) == "" {
		missing = append(missing, "email1.subject")
	}
	if strings.TrimSpace(e.Email1.Body) == "" {
		missing = append(missing, "email1.body")
	}
	if strings.TrimSpace(e.Email2.Subject) == "" {
		missing = append(missing, "email2.subject")
	}
	if strings.TrimSpace(e.Email2.Body) == "" {
		missing = append(missing, "email2.body")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedResponse, strings.Join(missing, ", "))
	}
	return nil
}
