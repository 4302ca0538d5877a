package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// CreatorProfile é o resultado do wizard de onboarding.
type CreatorProfile struct {
	ID           string     `json:"id"`
	DisplayName  string     `json:"display_name"`
	Handle       string     `json:"handle"`
	Niche        string     `json:"niche,omitempty"`
	Platforms    []string   `json:"platforms"`
	AudienceSize int64      `json:"audience_size"`
	RateCard     string     `json:"rate_card"`
	Bio          string     `json:"bio,omitempty"`
	OnboardedAt  *time.Time `json:"onboarded_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p *CreatorProfile) Validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	if strings.TrimSpace(p.DisplayName) == "" {
		return errors.New("display_name is required")
	}
	if strings.TrimSpace(p.Handle) == "" {
		return errors.New("handle is required")
	}
	if p.AudienceSize < 0 {
		return errors.New("audience_size must not be negative")
	}
	return nil
}

func (p *CreatorProfile) ParsedRateCard() RateCard {
	return ParseRateCard(p.RateCard)
}

type CreatorRepositoryInterface interface {
	Upsert(ctx context.Context, p *CreatorProfile) error
	FindByID(ctx context.Context, id string) (*CreatorProfile, error)
}
