package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xavierca1/creator-deals/internal/entity"
)

const (
	campaignColumns    = `id, creator_id, brand_id, name, status, fee_cents, start_date, end_date, brief, created_at, updated_at`
	deliverableColumns = `id, campaign_id, type, description, due_at, status, posted_url, posted_at, created_at, updated_at`
)

type CampaignRepository struct {
	DB *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{DB: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entity.Campaign) error {
	brief, err := json.Marshal(c.Brief)
	if err != nil {
		return fmt.Errorf("encode brief: %w", err)
	}

	_, err = r.DB.ExecContext(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		c.ID, c.CreatorID, c.BrandID, c.Name, string(c.Status), c.FeeCents,
		c.StartDate, c.EndDate, string(brief), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*entity.Campaign, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return c, err
}

func (r *CampaignRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Campaign, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE creator_id = $1 ORDER BY created_at DESC`, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CampaignRepository) Update(ctx context.Context, c *entity.Campaign) error {
	if !validID(c.ID) {
		return entity.ErrNotFound
	}
	brief, err := json.Marshal(c.Brief)
	if err != nil {
		return fmt.Errorf("encode brief: %w", err)
	}

	res, err := r.DB.ExecContext(ctx, `
		UPDATE campaigns SET
			name = $2, status = $3, fee_cents = $4, start_date = $5, end_date = $6, brief = $7, updated_at = $8
		WHERE id = $1`,
		c.ID, c.Name, string(c.Status), c.FeeCents, c.StartDate, c.EndDate, string(brief), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) CreateDeliverable(ctx context.Context, d *entity.Deliverable) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO deliverables (`+deliverableColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		d.ID, d.CampaignID, d.Type, nullString(d.Description), d.DueAt, string(d.Status),
		nullString(d.PostedURL), d.PostedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deliverable: %w", err)
	}
	return nil
}

func (r *CampaignRepository) FindDeliverableByID(ctx context.Context, id string) (*entity.Deliverable, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+deliverableColumns+` FROM deliverables WHERE id = $1`, id)
	d, err := scanDeliverable(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return d, err
}

func (r *CampaignRepository) ListDeliverables(ctx context.Context, campaignID string) ([]*entity.Deliverable, error) {
	if !validID(campaignID) {
		return nil, nil
	}
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+deliverableColumns+` FROM deliverables WHERE campaign_id = $1 ORDER BY due_at NULLS LAST, created_at`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Deliverable
	for rows.Next() {
		d, err := scanDeliverable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *CampaignRepository) UpdateDeliverable(ctx context.Context, d *entity.Deliverable) error {
	if !validID(d.ID) {
		return entity.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `
		UPDATE deliverables SET
			type = $2, description = $3, due_at = $4, status = $5, posted_url = $6, posted_at = $7, updated_at = $8
		WHERE id = $1`,
		d.ID, d.Type, nullString(d.Description), d.DueAt, string(d.Status),
		nullString(d.PostedURL), d.PostedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deliverable: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func scanCampaign(s scanner) (*entity.Campaign, error) {
	var (
		c          entity.Campaign
		status     string
		start, end sql.NullTime
		brief      []byte
	)
	err := s.Scan(&c.ID, &c.CreatorID, &c.BrandID, &c.Name, &status, &c.FeeCents,
		&start, &end, &brief, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = entity.CampaignStatus(status)
	c.StartDate = timePtr(start)
	c.EndDate = timePtr(end)
	if len(brief) > 0 {
		if err := json.Unmarshal(brief, &c.Brief); err != nil {
			return nil, fmt.Errorf("decode brief for campaign %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

func scanDeliverable(s scanner) (*entity.Deliverable, error) {
	var (
		d             entity.Deliverable
		desc, url     sql.NullString
		due, postedAt sql.NullTime
		status        string
	)
	err := s.Scan(&d.ID, &d.CampaignID, &d.Type, &desc, &due, &status, &url, &postedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Description = stringValue(desc)
	d.DueAt = timePtr(due)
	d.Status = entity.DeliverableStatus(status)
	d.PostedURL = stringValue(url)
	d.PostedAt = timePtr(postedAt)
	return &d, nil
}
