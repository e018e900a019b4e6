package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// AttributeService handles product attribute definitions
type AttributeService struct {
	attributeRepo catalog.AttributeRepository
}

// NewAttributeService creates a new AttributeService
func NewAttributeService(attributeRepo catalog.AttributeRepository) *AttributeService {
	return &AttributeService{attributeRepo: attributeRepo}
}

// Create creates a new attribute definition
func (s *AttributeService) Create(ctx context.Context, req CreateAttributeRequest) (*AttributeResponse, error) {
	exists, err := s.attributeRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Attribute with this code already exists")
	}

	attribute, err := catalog.NewAttribute(req.Code, req.Name, catalog.AttributeInputType(req.InputType))
	if err != nil {
		return nil, err
	}

	if req.Options != "" {
		if err := attribute.SetOptions(req.Options); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		attribute.SetSortOrder(*req.SortOrder)
	}

	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}
	return toAttributeResponse(attribute), nil
}

// Update updates an attribute definition. The code is immutable.
func (s *AttributeService) Update(ctx context.Context, id uuid.UUID, req UpdateAttributeRequest) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := attribute.Update(req.Name); err != nil {
		return nil, err
	}
	if req.Options != nil {
		if err := attribute.SetOptions(*req.Options); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		attribute.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			err = attribute.Activate()
		} else {
			err = attribute.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}
	return toAttributeResponse(attribute), nil
}

// Get returns a single attribute
func (s *AttributeService) Get(ctx context.Context, id uuid.UUID) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAttributeResponse(attribute), nil
}

// List returns attributes matching the filter with the total count
func (s *AttributeService) List(ctx context.Context, listFilter ListFilter) ([]*AttributeResponse, int64, error) {
	filter := listFilter.toFilter()

	attributes, err := s.attributeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.attributeRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*AttributeResponse, 0, len(attributes))
	for i := range attributes {
		responses = append(responses, toAttributeResponse(&attributes[i]))
	}
	return responses, total, nil
}

// ListActive returns only active attributes, ordered for display
func (s *AttributeService) ListActive(ctx context.Context) ([]*AttributeResponse, error) {
	attributes, err := s.attributeRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*AttributeResponse, 0, len(attributes))
	for i := range attributes {
		responses = append(responses, toAttributeResponse(&attributes[i]))
	}
	return responses, nil
}

// Delete removes an attribute definition
func (s *AttributeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.attributeRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.attributeRepo.Delete(ctx, id)
}
