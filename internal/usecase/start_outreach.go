package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/logger"
)

type StartOutreachUseCase struct {
	Repo      entity.OutreachRepositoryInterface
	BrandRepo entity.BrandRepositoryInterface
}

func NewStartOutreachUseCase(repo entity.OutreachRepositoryInterface, brandRepo entity.BrandRepositoryInterface) *StartOutreachUseCase {
	return &StartOutreachUseCase{Repo: repo, BrandRepo: brandRepo}
}

// Execute cria o outreach em draft. Com brand_id, nome e contato vêm da
// marca quando não informados. O estágio da marca não é alterado.
func (uc *StartOutreachUseCase) Execute(ctx context.Context, input StartOutreachInput) (*entity.Outreach, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, joinValidation(errs)
	}

	brandName := strings.TrimSpace(input.BrandName)
	contact := strings.TrimSpace(input.ContactEmail)

	if input.BrandID != "" {
		brand, err := uc.BrandRepo.FindByID(ctx, input.BrandID)
		if err != nil {
			return nil, loadError("brand", err)
		}
		if brand.CreatorID != input.CreatorID {
			return nil, &DomainError{Code: CodeNotFound, Message: "brand not found"}
		}
		if brandName == "" {
			brandName = brand.Name
		}
		if contact == "" {
			contact = brand.ContactEmail
		}
	}

	if contact == "" {
		return nil, joinValidation([]ValidationError{{Field: "contact_email", Message: "is required"}})
	}

	o, err := entity.NewOutreach(input.CreatorID, brandName, contact, input.ProductDescription)
	if err != nil {
		return nil, validationError(err.Error())
	}
	o.BrandID = input.BrandID
	o.AutoSendFollowUp = input.AutoSendFollowUp

	if err := uc.Repo.Create(ctx, o); err != nil {
		return nil, dbError("failed to create outreach", err)
	}

	logger.WithOutreach(o.ID).WithField("brand", o.BrandName).Info("📝 outreach iniciado")
	return o, nil
}
