package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/creator-deals/internal/entity"
)

const outreachColumns = `
	id, creator_id, brand_id, brand_name, contact_email, product_description, fit_justification,
	email1_subject, email1_body, email2_subject, email2_body,
	email1_sent_at, email2_sent_at, email2_due_at, auto_send_follow_up, proposal,
	replied_at, archived_at, proposal_sent_at, status, created_at, updated_at`

type OutreachRepository struct {
	DB *sql.DB
}

func NewOutreachRepository(db *sql.DB) *OutreachRepository {
	return &OutreachRepository{DB: db}
}

func (r *OutreachRepository) Create(ctx context.Context, o *entity.Outreach) error {
	proposal, err := encodeProposal(o.Proposal)
	if err != nil {
		return err
	}

	query := `INSERT INTO outreaches (` + outreachColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)`

	_, err = r.DB.ExecContext(ctx, query,
		o.ID, o.CreatorID, nullString(o.BrandID), o.BrandName, o.ContactEmail,
		nullString(o.ProductDescription), nullString(o.FitJustification),
		nullString(o.Email1.Subject), nullString(o.Email1.Body),
		nullString(o.Email2.Subject), nullString(o.Email2.Body),
		o.Email1SentAt, o.Email2SentAt, o.Email2DueAt, o.AutoSendFollowUp, proposal,
		o.RepliedAt, o.ArchivedAt, o.ProposalSentAt, string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert outreach: %w", err)
	}
	return nil
}

func (r *OutreachRepository) FindByID(ctx context.Context, id string) (*entity.Outreach, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+outreachColumns+` FROM outreaches WHERE id = $1`, id)
	o, err := scanOutreach(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return o, err
}

func (r *OutreachRepository) List(ctx context.Context, f entity.OutreachFilter) ([]*entity.Outreach, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f.CreatorID != "" {
		add("creator_id = $%d", f.CreatorID)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	} else if !f.IncludeArchived {
		add("status <> $%d", string(entity.StatusArchived))
	}

	query := `SELECT ` + outreachColumns + ` FROM outreaches`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY updated_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOutreaches(rows)
}

func (r *OutreachRepository) Update(ctx context.Context, o *entity.Outreach) error {
	res, err := r.update(ctx, o, "")
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// UpdateIfStatus só grava se o status no banco ainda for expected.
// false sem erro significa que outra escrita chegou antes.
func (r *OutreachRepository) UpdateIfStatus(ctx context.Context, o *entity.Outreach, expected entity.OutreachStatus) (bool, error) {
	res, err := r.update(ctx, o, expected)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *OutreachRepository) update(ctx context.Context, o *entity.Outreach, expected entity.OutreachStatus) (sql.Result, error) {
	if !validID(o.ID) {
		return nil, entity.ErrNotFound
	}
	proposal, err := encodeProposal(o.Proposal)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE outreaches SET
			brand_id = $2, brand_name = $3, contact_email = $4,
			product_description = $5, fit_justification = $6,
			email1_subject = $7, email1_body = $8, email2_subject = $9, email2_body = $10,
			email1_sent_at = $11, email2_sent_at = $12, email2_due_at = $13,
			auto_send_follow_up = $14, proposal = $15,
			replied_at = $16, archived_at = $17, proposal_sent_at = $18,
			status = $19, updated_at = $20
		WHERE id = $1`
	args := []any{
		o.ID, nullString(o.BrandID), o.BrandName, o.ContactEmail,
		nullString(o.ProductDescription), nullString(o.FitJustification),
		nullString(o.Email1.Subject), nullString(o.Email1.Body),
		nullString(o.Email2.Subject), nullString(o.Email2.Body),
		o.Email1SentAt, o.Email2SentAt, o.Email2DueAt,
		o.AutoSendFollowUp, proposal,
		o.RepliedAt, o.ArchivedAt, o.ProposalSentAt,
		string(o.Status), o.UpdatedAt,
	}
	if expected != "" {
		query += " AND status = $21"
		args = append(args, string(expected))
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update outreach: %w", err)
	}
	return res, nil
}

// FindDueFollowUps lista os sent com auto-send ligado e prazo vencido.
func (r *OutreachRepository) FindDueFollowUps(ctx context.Context, now time.Time, limit int) ([]*entity.Outreach, error) {
	query := `SELECT ` + outreachColumns + ` FROM outreaches
		WHERE status = $1
			AND auto_send_follow_up
			AND email2_sent_at IS NULL
			AND email2_due_at IS NOT NULL
			AND email2_due_at <= $2
			AND (email2_subject IS NOT NULL OR email2_body IS NOT NULL)
		ORDER BY email2_due_at
		LIMIT $3`

	rows, err := r.DB.QueryContext(ctx, query, string(entity.StatusSent), now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOutreaches(rows)
}

func (r *OutreachRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM outreaches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func collectOutreaches(rows *sql.Rows) ([]*entity.Outreach, error) {
	var out []*entity.Outreach
	for rows.Next() {
		o, err := scanOutreach(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func scanOutreach(s scanner) (*entity.Outreach, error) {
	var (
		o                                    entity.Outreach
		brandID, product, fit                sql.NullString
		e1Subject, e1Body, e2Subject, e2Body sql.NullString
		e1Sent, e2Sent, e2Due                sql.NullTime
		replied, archived, proposalSent      sql.NullTime
		proposal                             []byte
		status                               string
	)

	err := s.Scan(
		&o.ID, &o.CreatorID, &brandID, &o.BrandName, &o.ContactEmail, &product, &fit,
		&e1Subject, &e1Body, &e2Subject, &e2Body,
		&e1Sent, &e2Sent, &e2Due, &o.AutoSendFollowUp, &proposal,
		&replied, &archived, &proposalSent, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.BrandID = stringValue(brandID)
	o.ProductDescription = stringValue(product)
	o.FitJustification = stringValue(fit)
	o.Email1 = entity.EmailDraft{Subject: stringValue(e1Subject), Body: stringValue(e1Body)}
	o.Email2 = entity.EmailDraft{Subject: stringValue(e2Subject), Body: stringValue(e2Body)}
	o.Email1SentAt = timePtr(e1Sent)
	o.Email2SentAt = timePtr(e2Sent)
	o.Email2DueAt = timePtr(e2Due)
	o.RepliedAt = timePtr(replied)
	o.ArchivedAt = timePtr(archived)
	o.ProposalSentAt = timePtr(proposalSent)
	o.Status = entity.OutreachStatus(status)

	if len(proposal) > 0 {
		var p entity.Proposal
		if err := json.Unmarshal(proposal, &p); err != nil {
			return nil, fmt.Errorf("decode proposal for outreach %s: %w", o.ID, err)
		}
		o.Proposal = &p
	}
	return &o, nil
}

// encodeProposal devolve string porque o lib/pq manda []byte como bytea.
func encodeProposal(p *entity.Proposal) (*string, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode proposal: %w", err)
	}
	s := string(b)
	return &s, nil
}
