package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
)

// APIKeyService manages programmatic access keys
type APIKeyService struct {
	keyRepo identity.APIKeyRepository
	logger  *zap.Logger
}

// NewAPIKeyService creates a new APIKeyService
func NewAPIKeyService(keyRepo identity.APIKeyRepository, logger *zap.Logger) *APIKeyService {
	return &APIKeyService{
		keyRepo: keyRepo,
		logger:  logger,
	}
}

// Create generates a new API key. The plaintext key is returned exactly
// once in the response and cannot be recovered afterwards.
func (s *APIKeyService) Create(ctx context.Context, req CreateAPIKeyRequest) (*APIKeyResponse, error) {
	key, plaintext, err := identity.NewAPIKey(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Scopes != "" {
		if err := key.SetScopes(req.Scopes); err != nil {
			return nil, err
		}
	}
	if req.ExpiresAt != nil {
		key.SetExpiry(*req.ExpiresAt)
	}

	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	s.logger.Info("api key created",
		zap.String("key_id", key.ID.String()),
		zap.String("prefix", key.Prefix))

	resp := toAPIKeyResponse(key)
	resp.PlainKey = plaintext
	return resp, nil
}

// Get returns a single API key
func (s *APIKeyService) Get(ctx context.Context, id uuid.UUID) (*APIKeyResponse, error) {
	key, err := s.keyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAPIKeyResponse(key), nil
}

// List returns API keys matching the filter
func (s *APIKeyService) List(ctx context.Context, filter shared.Filter) ([]*APIKeyResponse, int64, error) {
	keys, err := s.keyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.keyRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*APIKeyResponse, 0, len(keys))
	for _, key := range keys {
		responses = append(responses, toAPIKeyResponse(key))
	}
	return responses, total, nil
}

// Rename changes the display name of an API key
func (s *APIKeyService) Rename(ctx context.Context, id uuid.UUID, name string) (*APIKeyResponse, error) {
	key, err := s.keyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := key.Rename(name); err != nil {
		return nil, err
	}
	if err := s.keyRepo.Update(ctx, key); err != nil {
		return nil, err
	}
	return toAPIKeyResponse(key), nil
}

// Revoke permanently deactivates an API key
func (s *APIKeyService) Revoke(ctx context.Context, id uuid.UUID) error {
	key, err := s.keyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := key.Revoke(); err != nil {
		return err
	}
	if err := s.keyRepo.Update(ctx, key); err != nil {
		return err
	}

	s.logger.Info("api key revoked", zap.String("key_id", key.ID.String()))
	return nil
}

// Delete removes an API key entirely
func (s *APIKeyService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.keyRepo.Delete(ctx, id)
}

// Authenticate resolves a plaintext key to its record, verifying that
// the key is active and not expired. Usage is recorded on success.
func (s *APIKeyService) Authenticate(ctx context.Context, plaintext string) (*identity.APIKey, error) {
	key, err := s.keyRepo.FindByHash(ctx, identity.LookupHash(plaintext))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_API_KEY", "Invalid API key")
		}
		return nil, err
	}
	if !key.IsUsable() {
		return nil, shared.NewDomainError("INVALID_API_KEY", "Invalid API key")
	}

	key.RecordUse()
	if err := s.keyRepo.Update(ctx, key); err != nil {
		s.logger.Warn("failed to record api key use",
			zap.String("key_id", key.ID.String()), zap.Error(err))
	}
	return key, nil
}
