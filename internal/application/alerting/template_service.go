package alerting

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/alerting"
	"github.com/storefront/backend/internal/domain/shared"
)

// TemplateService manages notification templates
type TemplateService struct {
	templateRepo alerting.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo alerting.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// Create creates a notification template
func (s *TemplateService) Create(ctx context.Context, req SaveTemplateRequest) (*TemplateResponse, error) {
	exists, err := s.templateRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this code already exists")
	}

	tpl, err := alerting.NewNotificationTemplate(req.Code, req.Name, req.Subject, req.Body)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil && !*req.IsActive {
		tpl.Deactivate()
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// Update updates a template. The code is immutable because alert rules
// reference templates by code.
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, req SaveTemplateRequest) (*TemplateResponse, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tpl.Update(req.Name, req.Subject, req.Body); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			tpl.Activate()
		} else {
			tpl.Deactivate()
		}
	}

	if err := s.templateRepo.Save(ctx, tpl); err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// Get returns a single template
func (s *TemplateService) Get(ctx context.Context, id uuid.UUID) (*TemplateResponse, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTemplateResponse(tpl), nil
}

// List returns templates matching the filter with a total count
func (s *TemplateService) List(ctx context.Context, req ListFilter) ([]*TemplateResponse, int64, error) {
	templates, total, err := s.templateRepo.FindAll(ctx, req.toFilter())
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		responses = append(responses, toTemplateResponse(tpl))
	}
	return responses, total, nil
}

// Preview renders the template with its placeholder names as sample values
func (s *TemplateService) Preview(ctx context.Context, id uuid.UUID) (*TemplatePreviewResponse, error) {
	tpl, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subject, body := tpl.RenderPreview()
	return &TemplatePreviewResponse{Subject: subject, Body: body}, nil
}

// Delete removes a template
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.templateRepo.Delete(ctx, id)
}
