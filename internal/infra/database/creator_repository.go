package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/creator-deals/internal/entity"
)

type CreatorRepository struct {
	DB *sql.DB
}

func NewCreatorRepository(db *sql.DB) *CreatorRepository {
	return &CreatorRepository{DB: db}
}

// Upsert mantém o onboarded_at original quando o perfil já existe.
func (r *CreatorRepository) Upsert(ctx context.Context, p *entity.CreatorProfile) error {
	query := `
		INSERT INTO creator_profiles (id, display_name, handle, niche, platforms, audience_size, rate_card, bio, onboarded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id)
		DO UPDATE SET
			display_name = EXCLUDED.display_name,
			handle = EXCLUDED.handle,
			niche = EXCLUDED.niche,
			platforms = EXCLUDED.platforms,
			audience_size = EXCLUDED.audience_size,
			rate_card = EXCLUDED.rate_card,
			bio = EXCLUDED.bio,
			onboarded_at = COALESCE(creator_profiles.onboarded_at, EXCLUDED.onboarded_at),
			updated_at = EXCLUDED.updated_at
		RETURNING onboarded_at`

	platforms := p.Platforms
	if platforms == nil {
		platforms = []string{}
	}

	var onboarded sql.NullTime
	err := r.DB.QueryRowContext(ctx, query,
		p.ID, p.DisplayName, p.Handle, nullString(p.Niche), pq.Array(platforms),
		p.AudienceSize, p.RateCard, nullString(p.Bio), p.OnboardedAt, p.UpdatedAt,
	).Scan(&onboarded)
	if err != nil {
		return fmt.Errorf("upsert creator profile: %w", err)
	}
	p.OnboardedAt = timePtr(onboarded)
	return nil
}

func (r *CreatorRepository) FindByID(ctx context.Context, id string) (*entity.CreatorProfile, error) {
	var (
		p           entity.CreatorProfile
		niche, bio  sql.NullString
		onboardedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, display_name, handle, niche, platforms, audience_size, rate_card, bio, onboarded_at, updated_at
		FROM creator_profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.DisplayName, &p.Handle, &niche, pq.Array(&p.Platforms), &p.AudienceSize,
		&p.RateCard, &bio, &onboardedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Niche = stringValue(niche)
	p.Bio = stringValue(bio)
	p.OnboardedAt = timePtr(onboardedAt)
	return &p, nil
}
