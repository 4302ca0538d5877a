package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/logger"
)

type BrandUseCase struct {
	Repo entity.BrandRepositoryInterface
	Now  Clock
}

func NewBrandUseCase(repo entity.BrandRepositoryInterface) *BrandUseCase {
	return &BrandUseCase{Repo: repo, Now: systemClock}
}

func (uc *BrandUseCase) Create(ctx context.Context, input BrandInput) (*entity.Brand, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	b, err := entity.NewBrand(input.CreatorID, input.Name)
	if err != nil {
		return nil, validationError(err.Error())
	}
	applyBrandInput(b, input)

	if err := uc.Repo.Create(ctx, b); err != nil {
		return nil, dbError("failed to create brand", err)
	}
	return b, nil
}

func (uc *BrandUseCase) Update(ctx context.Context, id string, input BrandInput) (*entity.Brand, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	b, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("brand", err)
	}
	if b.CreatorID != input.CreatorID {
		return nil, &DomainError{Code: CodeNotFound, Message: "brand not found"}
	}

	b.Name = strings.TrimSpace(input.Name)
	applyBrandInput(b, input)
	b.UpdatedAt = uc.Now()
	if err := b.Validate(); err != nil {
		return nil, validationError(err.Error())
	}

	if err := uc.Repo.Update(ctx, b); err != nil {
		return nil, dbError("failed to update brand", err)
	}
	return b, nil
}

func (uc *BrandUseCase) Get(ctx context.Context, id string) (*entity.Brand, error) {
	b, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("brand", err)
	}
	return b, nil
}

// List devolve o quadro do criador, opcionalmente filtrado por estágio.
func (uc *BrandUseCase) List(ctx context.Context, creatorID, stage string) ([]*entity.Brand, error) {
	if creatorID == "" {
		return nil, joinValidation([]ValidationError{{Field: "creator_id", Message: "is required"}})
	}
	var st entity.PipelineStage
	if stage != "" {
		parsed, err := entity.ParsePipelineStage(stage)
		if err != nil {
			return nil, validationError(err.Error())
		}
		st = parsed
	}

	brands, err := uc.Repo.ListByCreator(ctx, creatorID, st)
	if err != nil {
		return nil, dbError("failed to list brands", err)
	}
	if brands == nil {
		brands = []*entity.Brand{}
	}
	return brands, nil
}

func (uc *BrandUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return loadError("brand", err)
	}
	return nil
}

// MoveStage é o drop no kanban. Last write wins: o cliente já aplicou a
// mudança e reconcilia com o que voltar daqui.
func (uc *BrandUseCase) MoveStage(ctx context.Context, input MoveBrandStageInput) (*entity.Brand, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}
	stage, err := entity.ParsePipelineStage(input.Stage)
	if err != nil {
		return nil, validationError(err.Error())
	}

	b, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, loadError("brand", err)
	}

	from := b.Stage
	if err := b.MoveTo(stage, input.Position, uc.Now()); err != nil {
		return nil, validationError(err.Error())
	}
	if err := uc.Repo.Update(ctx, b); err != nil {
		return nil, dbError("failed to move brand", err)
	}

	logger.L().WithField("brand_id", b.ID).WithField("from", from).WithField("to", b.Stage).Info("📦 marca movida")
	return b, nil
}

func applyBrandInput(b *entity.Brand, input BrandInput) {
	b.Website = strings.TrimSpace(input.Website)
	b.ContactName = strings.TrimSpace(input.ContactName)
	b.ContactEmail = strings.TrimSpace(input.ContactEmail)
	b.Category = strings.TrimSpace(input.Category)
	b.Notes = input.Notes
	b.DealValueCents = input.DealValueCents

	tags := make([]string, 0, len(input.Tags))
	seen := map[string]bool{}
	for _, t := range input.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	b.Tags = tags
}
