package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type CampaignStatus string

const (
	CampaignPlanning  CampaignStatus = "planning"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

func ParseCampaignStatus(s string) (CampaignStatus, error) {
	switch st := CampaignStatus(s); st {
	case CampaignPlanning, CampaignActive, CampaignCompleted, CampaignCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown campaign status %q", s)
}

// CampaignBrief substitui o objeto livre do brief. Todos os campos são opcionais.
type CampaignBrief struct {
	Objective   *string  `json:"objective,omitempty"`
	KeyMessages []string `json:"key_messages,omitempty"`
	DoNots      []string `json:"do_nots,omitempty"`
	Hashtags    []string `json:"hashtags,omitempty"`
	Links       []string `json:"links,omitempty"`
}

type Campaign struct {
	ID           string         `json:"id"`
	CreatorID    string         `json:"creator_id"`
	BrandID      string         `json:"brand_id"`
	Name         string         `json:"name"`
	Status       CampaignStatus `json:"status"`
	FeeCents     int64          `json:"fee_cents"`
	StartDate    *time.Time     `json:"start_date,omitempty"`
	EndDate      *time.Time     `json:"end_date,omitempty"`
	Brief        CampaignBrief  `json:"brief"`
	Deliverables []*Deliverable `json:"deliverables,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func NewCampaign(creatorID, brandID, name string, feeCents int64) (*Campaign, error) {
	now := time.Now().UTC()
	c := &Campaign{
		ID:        uuid.New().String(),
		CreatorID: creatorID,
		BrandID:   brandID,
		Name:      strings.TrimSpace(name),
		Status:    CampaignPlanning,
		FeeCents:  feeCents,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Campaign) Validate() error {
	if c.CreatorID == "" {
		return errors.New("creator_id is required")
	}
	if c.BrandID == "" {
		return errors.New("brand_id is required")
	}
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.FeeCents < 0 {
		return errors.New("fee_cents must not be negative")
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(*c.StartDate) {
		return errors.New("end_date must not be before start_date")
	}
	return nil
}

type DeliverableStatus string

const (
	DeliverableTodo     DeliverableStatus = "todo"
	DeliverableInReview DeliverableStatus = "in_review"
	DeliverableApproved DeliverableStatus = "approved"
	DeliverablePosted   DeliverableStatus = "posted"
)

func ParseDeliverableStatus(s string) (DeliverableStatus, error) {
	switch st := DeliverableStatus(s); st {
	case DeliverableTodo, DeliverableInReview, DeliverableApproved, DeliverablePosted:
		return st, nil
	}
	return "", fmt.Errorf("unknown deliverable status %q", s)
}

type Deliverable struct {
	ID          string            `json:"id"`
	CampaignID  string            `json:"campaign_id"`
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	DueAt       *time.Time        `json:"due_at,omitempty"`
	Status      DeliverableStatus `json:"status"`
	PostedURL   string            `json:"posted_url,omitempty"`
	PostedAt    *time.Time        `json:"posted_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewDeliverable(campaignID, kind, description string, dueAt *time.Time) (*Deliverable, error) {
	if campaignID == "" {
		return nil, errors.New("campaign_id is required")
	}
	if strings.TrimSpace(kind) == "" {
		return nil, errors.New("type is required")
	}
	now := time.Now().UTC()
	return &Deliverable{
		ID:          uuid.New().String(),
		CampaignID:  campaignID,
		Type:        strings.TrimSpace(kind),
		Description: description,
		DueAt:       dueAt,
		Status:      DeliverableTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetStatus não aceita "posted": use MarkPosted, que exige a URL.
func (d *Deliverable) SetStatus(status DeliverableStatus, now time.Time) error {
	if status == DeliverablePosted {
		return errors.New("use MarkPosted to mark a deliverable as posted")
	}
	d.Status = status
	d.PostedURL = ""
	d.PostedAt = nil
	d.UpdatedAt = now
	return nil
}

func (d *Deliverable) MarkPosted(url string, now time.Time) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("posted_url is required")
	}
	posted := now
	d.Status = DeliverablePosted
	d.PostedURL = url
	d.PostedAt = &posted
	d.UpdatedAt = now
	return nil
}

func (d *Deliverable) Overdue(now time.Time) bool {
	return d.DueAt != nil && d.Status != DeliverablePosted && d.DueAt.Before(now)
}

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *Campaign) error
	FindByID(ctx context.Context, id string) (*Campaign, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	CreateDeliverable(ctx context.Context, d *Deliverable) error
	FindDeliverableByID(ctx context.Context, id string) (*Deliverable, error)
	ListDeliverables(ctx context.Context, campaignID string) ([]*Deliverable, error)
	UpdateDeliverable(ctx context.Context, d *Deliverable) error
}
