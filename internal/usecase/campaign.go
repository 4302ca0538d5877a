package usecase

import (
	"context"

	"github.com/xavierca1/creator-deals/internal/entity"
)

type CampaignUseCase struct {
	Repo      entity.CampaignRepositoryInterface
	BrandRepo entity.BrandRepositoryInterface
	Now       Clock
}

func NewCampaignUseCase(repo entity.CampaignRepositoryInterface, brandRepo entity.BrandRepositoryInterface) *CampaignUseCase {
	return &CampaignUseCase{Repo: repo, BrandRepo: brandRepo, Now: systemClock}
}

func (uc *CampaignUseCase) Create(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	brand, err := uc.BrandRepo.FindByID(ctx, input.BrandID)
	if err != nil {
		return nil, loadError("brand", err)
	}
	if brand.CreatorID != input.CreatorID {
		return nil, &DomainError{Code: CodeNotFound, Message: "brand not found"}
	}

	c, err := entity.NewCampaign(input.CreatorID, input.BrandID, input.Name, input.FeeCents)
	if err != nil {
		return nil, validationError(err.Error())
	}
	c.StartDate = input.StartDate
	c.EndDate = input.EndDate
	c.Brief = input.Brief
	if err := c.Validate(); err != nil {
		return nil, validationError(err.Error())
	}

	if err := uc.Repo.Create(ctx, c); err != nil {
		return nil, dbError("failed to create campaign", err)
	}
	return c, nil
}

func (uc *CampaignUseCase) List(ctx context.Context, creatorID string) ([]*entity.Campaign, error) {
	if creatorID == "" {
		return nil, joinValidation([]ValidationError{{Field: "creator_id", Message: "is required"}})
	}
	list, err := uc.Repo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, dbError("failed to list campaigns", err)
	}
	if list == nil {
		list = []*entity.Campaign{}
	}
	return list, nil
}

// Get devolve a campanha com os entregáveis.
func (uc *CampaignUseCase) Get(ctx context.Context, id string) (*entity.Campaign, error) {
	c, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("campaign", err)
	}
	deliverables, err := uc.Repo.ListDeliverables(ctx, c.ID)
	if err != nil {
		return nil, dbError("failed to list deliverables", err)
	}
	c.Deliverables = deliverables
	return c, nil
}

func (uc *CampaignUseCase) UpdateStatus(ctx context.Context, id, status string) (*entity.Campaign, error) {
	st, err := entity.ParseCampaignStatus(status)
	if err != nil {
		return nil, validationError(err.Error())
	}
	c, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("campaign", err)
	}
	c.Status = st
	c.UpdatedAt = uc.Now()
	if err := uc.Repo.Update(ctx, c); err != nil {
		return nil, dbError("failed to update campaign", err)
	}
	return c, nil
}

func (uc *CampaignUseCase) AddDeliverable(ctx context.Context, input AddDeliverableInput) (*entity.Deliverable, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}
	if _, err := uc.Repo.FindByID(ctx, input.CampaignID); err != nil {
		return nil, loadError("campaign", err)
	}

	d, err := entity.NewDeliverable(input.CampaignID, input.Type, input.Description, input.DueAt)
	if err != nil {
		return nil, validationError(err.Error())
	}
	if err := uc.Repo.CreateDeliverable(ctx, d); err != nil {
		return nil, dbError("failed to create deliverable", err)
	}
	return d, nil
}

func (uc *CampaignUseCase) UpdateDeliverableStatus(ctx context.Context, id, status string) (*entity.Deliverable, error) {
	st, err := entity.ParseDeliverableStatus(status)
	if err != nil {
		return nil, validationError(err.Error())
	}
	d, err := uc.Repo.FindDeliverableByID(ctx, id)
	if err != nil {
		return nil, loadError("deliverable", err)
	}
	if err := d.SetStatus(st, uc.Now()); err != nil {
		return nil, validationError(err.Error())
	}
	if err := uc.Repo.UpdateDeliverable(ctx, d); err != nil {
		return nil, dbError("failed to update deliverable", err)
	}
	return d, nil
}

func (uc *CampaignUseCase) MarkDeliverablePosted(ctx context.Context, id, url string) (*entity.Deliverable, error) {
	d, err := uc.Repo.FindDeliverableByID(ctx, id)
	if err != nil {
		return nil, loadError("deliverable", err)
	}
	if err := d.MarkPosted(url, uc.Now()); err != nil {
		return nil, validationError(err.Error())
	}
	if err := uc.Repo.UpdateDeliverable(ctx, d); err != nil {
		return nil, dbError("failed to update deliverable", err)
	}
	return d, nil
}
