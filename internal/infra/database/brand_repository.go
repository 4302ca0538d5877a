package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/creator-deals/internal/entity"
)

const brandColumns = `id, creator_id, name, website, contact_name, contact_email, category,
	tags, notes, stage, deal_value_cents, position, created_at, updated_at`

type BrandRepository struct {
	DB *sql.DB
}

func NewBrandRepository(db *sql.DB) *BrandRepository {
	return &BrandRepository{DB: db}
}

func (r *BrandRepository) Create(ctx context.Context, b *entity.Brand) error {
	query := `INSERT INTO brands (` + brandColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

	_, err := r.DB.ExecContext(ctx, query,
		b.ID, b.CreatorID, b.Name, nullString(b.Website), nullString(b.ContactName),
		nullString(b.ContactEmail), nullString(b.Category), pq.Array(tagsOrEmpty(b.Tags)),
		nullString(b.Notes), string(b.Stage), b.DealValueCents, b.Position, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepository) FindByID(ctx context.Context, id string) (*entity.Brand, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	row := r.DB.QueryRowContext(ctx, `SELECT `+brandColumns+` FROM brands WHERE id = $1`, id)
	b, err := scanBrand(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	return b, err
}

// ListByCreator devolve o quadro na ordem das colunas e posições.
// stage vazio traz todos os estágios.
func (r *BrandRepository) ListByCreator(ctx context.Context, creatorID string, stage entity.PipelineStage) ([]*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE creator_id = $1`
	args := []any{creatorID}
	if stage != "" {
		query += ` AND stage = $2`
		args = append(args, string(stage))
	}
	args = append(args, pq.Array(stageOrder()))
	query += fmt.Sprintf(` ORDER BY array_position($%d::text[], stage), position, updated_at DESC`, len(args))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BrandRepository) Update(ctx context.Context, b *entity.Brand) error {
	if !validID(b.ID) {
		return entity.ErrNotFound
	}
	query := `
		UPDATE brands SET
			name = $2, website = $3, contact_name = $4, contact_email = $5, category = $6,
			tags = $7, notes = $8, stage = $9, deal_value_cents = $10, position = $11, updated_at = $12
		WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, query,
		b.ID, b.Name, nullString(b.Website), nullString(b.ContactName), nullString(b.ContactEmail),
		nullString(b.Category), pq.Array(tagsOrEmpty(b.Tags)), nullString(b.Notes), string(b.Stage),
		b.DealValueCents, b.Position, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *BrandRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func scanBrand(s scanner) (*entity.Brand, error) {
	var (
		b                                       entity.Brand
		website, contactName, contactEmail, cat sql.NullString
		notes                                   sql.NullString
		stage                                   string
	)
	err := s.Scan(
		&b.ID, &b.CreatorID, &b.Name, &website, &contactName, &contactEmail, &cat,
		pq.Array(&b.Tags), &notes, &stage, &b.DealValueCents, &b.Position, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Website = stringValue(website)
	b.ContactName = stringValue(contactName)
	b.ContactEmail = stringValue(contactEmail)
	b.Category = stringValue(cat)
	b.Notes = stringValue(notes)
	b.Stage = entity.PipelineStage(stage)
	b.Tags = tagsOrEmpty(b.Tags)
	return &b, nil
}

func stageOrder() []string {
	stages := entity.PipelineStages()
	out := make([]string, len(stages))
	for i, st := range stages {
		out[i] = string(st)
	}
	return out
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
