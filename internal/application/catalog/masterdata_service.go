package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// MasterDataService manages the reference lists used by product forms,
// such as age groups and fits. The set of kinds is fixed; only entries
// within a kind are editable.
type MasterDataService struct {
	masterDataRepo catalog.MasterDataRepository
}

// NewMasterDataService creates a new MasterDataService
func NewMasterDataService(masterDataRepo catalog.MasterDataRepository) *MasterDataService {
	return &MasterDataService{masterDataRepo: masterDataRepo}
}

// Kinds returns the managed list kinds
func (s *MasterDataService) Kinds() []string {
	kinds := make([]string, 0, len(catalog.MasterDataKinds))
	for _, kind := range catalog.MasterDataKinds {
		kinds = append(kinds, string(kind))
	}
	return kinds
}

// Create adds an entry to a managed list
func (s *MasterDataService) Create(ctx context.Context, kind string, req CreateMasterDataRequest) (*MasterDataResponse, error) {
	dataKind := catalog.MasterDataKind(kind)
	if !catalog.IsValidMasterDataKind(dataKind) {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown master data kind")
	}

	exists, err := s.masterDataRepo.ExistsByKindAndCode(ctx, dataKind, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Entry with this code already exists for the kind")
	}

	entry, err := catalog.NewMasterDataEntry(dataKind, req.Code, req.Label)
	if err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		entry.SetSortOrder(*req.SortOrder)
	}

	if err := s.masterDataRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return toMasterDataResponse(entry), nil
}

// Update updates an entry's label, order and active flag
func (s *MasterDataService) Update(ctx context.Context, id uuid.UUID, req UpdateMasterDataRequest) (*MasterDataResponse, error) {
	entry, err := s.masterDataRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := entry.Update(req.Label); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		entry.SetSortOrder(*req.SortOrder)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			err = entry.Activate()
		} else {
			err = entry.Deactivate()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.masterDataRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return toMasterDataResponse(entry), nil
}

// List returns all entries of a kind
func (s *MasterDataService) List(ctx context.Context, kind string) ([]*MasterDataResponse, error) {
	dataKind := catalog.MasterDataKind(kind)
	if !catalog.IsValidMasterDataKind(dataKind) {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown master data kind")
	}

	entries, err := s.masterDataRepo.FindByKind(ctx, dataKind)
	if err != nil {
		return nil, err
	}

	responses := make([]*MasterDataResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toMasterDataResponse(&entries[i]))
	}
	return responses, nil
}

// ListActive returns the active entries of a kind, for storefront filters
func (s *MasterDataService) ListActive(ctx context.Context, kind string) ([]*MasterDataResponse, error) {
	dataKind := catalog.MasterDataKind(kind)
	if !catalog.IsValidMasterDataKind(dataKind) {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown master data kind")
	}

	entries, err := s.masterDataRepo.FindActiveByKind(ctx, dataKind)
	if err != nil {
		return nil, err
	}

	responses := make([]*MasterDataResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, toMasterDataResponse(&entries[i]))
	}
	return responses, nil
}

// Delete removes an entry from a managed list
func (s *MasterDataService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.masterDataRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.masterDataRepo.Delete(ctx, id)
}
