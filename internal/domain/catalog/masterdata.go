package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// MasterDataKind identifies a managed reference list
type MasterDataKind string

const (
	MasterDataAgeGroup MasterDataKind = "age_group"
	MasterDataFit      MasterDataKind = "fit"
	MasterDataLength   MasterDataKind = "length"
	MasterDataNeckline MasterDataKind = "neckline"
)

// MasterDataKinds lists every managed reference list
var MasterDataKinds = []MasterDataKind{
	MasterDataAgeGroup,
	MasterDataFit,
	MasterDataLength,
	MasterDataNeckline,
}

// IsValidMasterDataKind reports whether the kind names a managed list
func IsValidMasterDataKind(kind MasterDataKind) bool {
	for _, k := range MasterDataKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// MasterDataEntry is one value in a managed reference list, such as a
// fit ("regular", "slim") or an age group ("adult", "kids")
type MasterDataEntry struct {
	shared.BaseAggregateRoot
	Kind      MasterDataKind `gorm:"type:varchar(30);not null;uniqueIndex:idx_masterdata_kind_code,priority:1;index"`
	Code      string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_masterdata_kind_code,priority:2"`
	Label     string         `gorm:"type:varchar(100);not null"`
	SortOrder int            `gorm:"not null;default:0"`
	IsActive  bool           `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MasterDataEntry) TableName() string {
	return "master_data_entries"
}

// NewMasterDataEntry creates a new reference list entry
func NewMasterDataEntry(kind MasterDataKind, code, label string) (*MasterDataEntry, error) {
	if !IsValidMasterDataKind(kind) {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown master data kind")
	}
	if err := validateMasterDataCode(code); err != nil {
		return nil, err
	}
	if label == "" {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label cannot be empty")
	}
	if len(label) > 100 {
		return nil, shared.NewDomainError("INVALID_LABEL", "Label cannot exceed 100 characters")
	}

	return &MasterDataEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Code:              strings.ToLower(code),
		Label:             label,
		IsActive:          true,
	}, nil
}

// Update updates the entry's display label
func (e *MasterDataEntry) Update(label string) error {
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "Label cannot be empty")
	}
	if len(label) > 100 {
		return shared.NewDomainError("INVALID_LABEL", "Label cannot exceed 100 characters")
	}

	e.Label = label
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// SetSortOrder sets the display order within the list
func (e *MasterDataEntry) SetSortOrder(order int) {
	e.SortOrder = order
	e.UpdatedAt = time.Now()
	e.IncrementVersion()
}

// Activate makes the entry selectable
func (e *MasterDataEntry) Activate() error {
	if e.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Entry is already active")
	}

	e.IsActive = true
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Deactivate hides the entry from selection
func (e *MasterDataEntry) Deactivate() error {
	if !e.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Entry is already inactive")
	}

	e.IsActive = false
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

func validateMasterDataCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// MasterDataRepository defines the interface for reference list persistence
type MasterDataRepository interface {
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*MasterDataEntry, error)

	// FindByKind finds all entries of a kind ordered by sort order
	FindByKind(ctx context.Context, kind MasterDataKind) ([]MasterDataEntry, error)

	// FindActiveByKind finds the active entries of a kind ordered by sort order
	FindActiveByKind(ctx context.Context, kind MasterDataKind) ([]MasterDataEntry, error)

	// FindByKindAndCode finds a single entry by kind and code
	FindByKindAndCode(ctx context.Context, kind MasterDataKind, code string) (*MasterDataEntry, error)

	// Save creates or updates an entry
	Save(ctx context.Context, entry *MasterDataEntry) error

	// Delete deletes an entry
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByKindAndCode checks if an entry exists for the kind and code
	ExistsByKindAndCode(ctx context.Context, kind MasterDataKind, code string) (bool, error)
}
