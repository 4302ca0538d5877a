package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/creator-deals/internal/entity"
)

type CreatorProfileUseCase struct {
	Repo entity.CreatorRepositoryInterface
	Now  Clock
}

func NewCreatorProfileUseCase(repo entity.CreatorRepositoryInterface) *CreatorProfileUseCase {
	return &CreatorProfileUseCase{Repo: repo, Now: systemClock}
}

// Save grava o fim do onboarding. O rate card vira a string de linhas.
func (uc *CreatorProfileUseCase) Save(ctx context.Context, input CreatorProfileInput) (*CreatorProfileOutput, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	now := uc.Now()
	profile, err := uc.Repo.FindByID(ctx, input.ID)
	switch {
	case errors.Is(err, entity.ErrNotFound):
		profile = &entity.CreatorProfile{ID: input.ID, OnboardedAt: &now}
	case err != nil:
		return nil, dbError("failed to load creator profile", err)
	}

	profile.DisplayName = strings.TrimSpace(input.DisplayName)
	profile.Handle = strings.TrimPrefix(strings.TrimSpace(input.Handle), "@")
	profile.Niche = strings.TrimSpace(input.Niche)
	profile.Platforms = input.Platforms
	if profile.Platforms == nil {
		profile.Platforms = []string{}
	}
	profile.AudienceSize = input.AudienceSize
	profile.RateCard = input.RateCard.Encode()
	profile.Bio = input.Bio
	profile.UpdatedAt = now

	if err := profile.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	if err := uc.Repo.Upsert(ctx, profile); err != nil {
		return nil, dbError("failed to save creator profile", err)
	}
	return &CreatorProfileOutput{CreatorProfile: profile, ParsedRateCard: profile.ParsedRateCard()}, nil
}

func (uc *CreatorProfileUseCase) Get(ctx context.Context, id string) (*CreatorProfileOutput, error) {
	profile, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("creator profile", err)
	}
	return &CreatorProfileOutput{CreatorProfile: profile, ParsedRateCard: profile.ParsedRateCard()}, nil
}
