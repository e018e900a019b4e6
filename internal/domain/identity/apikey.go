package identity

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

const (
	apiKeyPrefix    = "sk"
	apiKeyRandBytes = 32
)

// APIKey grants programmatic access to the admin API. The plaintext key
// is shown once at creation; only its hash is stored.
type APIKey struct {
	shared.BaseAggregateRoot
	Name       string `gorm:"type:varchar(100);not null"`
	Prefix     string `gorm:"type:varchar(20);not null;index"` // First characters of the key, for display and lookup
	KeyHash    string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Scopes     string `gorm:"type:jsonb"` // JSON array of permission codes
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	IsActive   bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (APIKey) TableName() string {
	return "api_keys"
}

// NewAPIKey mints a new API key. The returned plaintext is the only
// chance to read the full key.
func NewAPIKey(name string) (*APIKey, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", shared.NewDomainError("INVALID_NAME", "API key name cannot be empty")
	}
	if len(name) > 100 {
		return nil, "", shared.NewDomainError("INVALID_NAME", "API key name cannot exceed 100 characters")
	}

	raw := make([]byte, apiKeyRandBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, "", shared.NewDomainError("KEY_GENERATION_ERROR", "Failed to generate API key")
	}

	plaintext := apiKeyPrefix + "_" + hex.EncodeToString(raw)

	key := &APIKey{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Prefix:            plaintext[:12],
		KeyHash:           hashAPIKey(plaintext),
		Scopes:            "[]",
		IsActive:          true,
	}

	return key, plaintext, nil
}

// Matches reports whether the plaintext key corresponds to this record
func (k *APIKey) Matches(plaintext string) bool {
	hash := hashAPIKey(plaintext)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(k.KeyHash)) == 1
}

// SetScopes sets the permission codes the key grants as a JSON array
func (k *APIKey) SetScopes(scopes string) error {
	if scopes == "" {
		scopes = "[]"
	}
	trimmed := strings.TrimSpace(scopes)
	var parsed []string
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return shared.NewDomainError("INVALID_SCOPES", "Scopes must be a JSON array of permission codes")
	}

	k.Scopes = trimmed
	k.UpdatedAt = time.Now()
	k.IncrementVersion()

	return nil
}

// SetExpiry sets when the key stops working. A zero time clears the expiry.
func (k *APIKey) SetExpiry(at time.Time) {
	if at.IsZero() {
		k.ExpiresAt = nil
	} else {
		k.ExpiresAt = &at
	}
	k.UpdatedAt = time.Now()
	k.IncrementVersion()
}

// Rename changes the key's display name
func (k *APIKey) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "API key name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "API key name cannot exceed 100 characters")
	}

	k.Name = strings.TrimSpace(name)
	k.UpdatedAt = time.Now()
	k.IncrementVersion()

	return nil
}

// RecordUse stamps the key's last use
func (k *APIKey) RecordUse() {
	now := time.Now()
	k.LastUsedAt = &now
}

// Revoke permanently disables the key
func (k *APIKey) Revoke() error {
	if !k.IsActive {
		return shared.NewDomainError("ALREADY_REVOKED", "API key is already revoked")
	}

	k.IsActive = false
	k.UpdatedAt = time.Now()
	k.IncrementVersion()

	return nil
}

// IsExpired returns true if the key has passed its expiry
func (k *APIKey) IsExpired() bool {
	return k.ExpiresAt != nil && time.Now().After(*k.ExpiresAt)
}

// IsUsable returns true if the key can authenticate requests
func (k *APIKey) IsUsable() bool {
	return k.IsActive && !k.IsExpired()
}

// ScopeList returns the permission codes the key grants
func (k *APIKey) ScopeList() []string {
	var scopes []string
	if err := json.Unmarshal([]byte(k.Scopes), &scopes); err != nil {
		return nil
	}
	return scopes
}

func hashAPIKey(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// APIKeyRepository defines the interface for API key persistence
type APIKeyRepository interface {
	// Create creates a new API key
	Create(ctx context.Context, key *APIKey) error

	// Update updates an existing API key
	Update(ctx context.Context, key *APIKey) error

	// Delete deletes an API key by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds an API key by ID
	FindByID(ctx context.Context, id uuid.UUID) (*APIKey, error)

	// FindByHash finds an API key by its hash
	FindByHash(ctx context.Context, hash string) (*APIKey, error)

	// FindAll returns all API keys matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]*APIKey, error)

	// Count counts API keys matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// LookupHash computes the stored hash for a plaintext key, for repository lookups
func LookupHash(plaintext string) string {
	return hashAPIKey(plaintext)
}
