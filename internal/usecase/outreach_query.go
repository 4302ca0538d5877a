package usecase

import (
	"context"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/logger"
)

type ListOutreachesInput struct {
	CreatorID       string `json:"creator_id" validate:"required"`
	Status          string `json:"status"`
	IncludeArchived bool   `json:"include_archived"`
}

// OutreachQueryUseCase cobre leitura e remoção.
type OutreachQueryUseCase struct {
	Repo entity.OutreachRepositoryInterface
}

func NewOutreachQueryUseCase(repo entity.OutreachRepositoryInterface) *OutreachQueryUseCase {
	return &OutreachQueryUseCase{Repo: repo}
}

func (uc *OutreachQueryUseCase) Get(ctx context.Context, id string) (*entity.Outreach, error) {
	o, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, loadError("outreach", err)
	}
	return o, nil
}

// List esconde os arquivados a menos que IncludeArchived ou Status=archived.
func (uc *OutreachQueryUseCase) List(ctx context.Context, input ListOutreachesInput) ([]*entity.Outreach, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	filter := entity.OutreachFilter{CreatorID: input.CreatorID, IncludeArchived: input.IncludeArchived}
	if input.Status != "" {
		st, err := entity.ParseOutreachStatus(input.Status)
		if err != nil {
			return nil, validationError(err.Error())
		}
		filter.Status = st
	}

	list, err := uc.Repo.List(ctx, filter)
	if err != nil {
		return nil, dbError("failed to list outreaches", err)
	}
	if list == nil {
		list = []*entity.Outreach{}
	}
	return list, nil
}

// Delete é definitivo.
func (uc *OutreachQueryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return loadError("outreach", err)
	}
	logger.WithOutreach(id).Info("🗑️ outreach removido")
	return nil
}
