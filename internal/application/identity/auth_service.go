package identity

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// ErrInvalidCredentials is returned for any login failure that should not
// reveal whether the email exists.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService handles registration, login and the token lifecycle
type AuthService struct {
	userRepo     identity.UserRepository
	roleRepo     identity.RoleRepository
	customerRepo customer.CustomerRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	authCfg      config.AuthConfig
	eventBus     shared.EventBus
	logger       *zap.Logger
	sessions     auth.SessionStore

	// Concurrent refreshes of the same token are collapsed into one so
	// parallel requests after access-token expiry all get the same pair.
	refreshGroup singleflight.Group
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	customerRepo customer.CustomerRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	authCfg config.AuthConfig,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		customerRepo: customerRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		authCfg:      authCfg,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// SetSessionStore enables server-side session tracking. Without a
// store, sessions live only in the tokens themselves.
func (s *AuthService) SetSessionStore(store auth.SessionStore) {
	s.sessions = store
}

// Register creates a shopper account and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if req.FirstName != "" || req.LastName != "" {
		if err := user.SetName(req.FirstName, req.LastName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, user)

	if err := s.createShopperProfile(ctx, user, req); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{User: toUserResponse(user), Tokens: tokens}, nil
}

// createShopperProfile links a customer profile to a freshly registered
// account so cart and checkout can key off the customer ID.
func (s *AuthService) createShopperProfile(ctx context.Context, user *identity.User, req RegisterRequest) error {
	profile, err := customer.NewCustomerForUser(user.ID, user.Email, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	if err := s.customerRepo.Save(ctx, profile); err != nil {
		return err
	}
	if s.eventBus != nil {
		for _, event := range profile.GetDomainEvents() {
			if err := s.eventBus.Publish(ctx, event); err != nil {
				s.logger.Warn("Failed to publish domain event",
					zap.String("event_type", event.EventType()), zap.Error(err))
			}
		}
		profile.ClearDomainEvents()
	}
	return nil
}

// Login authenticates a user and returns a token pair. Repeated failures
// lock the account for the configured duration.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, ip string) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked() {
		return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked, try again later")
	}
	if user.IsDeactivated() {
		return nil, shared.NewDomainError("ACCOUNT_DISABLED", "Account has been deactivated")
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.authCfg.MaxLoginAttempts, s.authCfg.LockoutDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to record login failure", zap.Error(err))
		}
		if locked {
			s.logger.Warn("Account locked after repeated login failures",
				zap.String("user_id", user.ID.String()),
			)
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked, try again later")
		}
		return nil, ErrInvalidCredentials
	}

	user.RecordLoginSuccess(ip)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_staff", user.IsStaff),
	)
	return &AuthResponse{User: toUserResponse(user), Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new token pair. Concurrent
// calls with the same token share a single exchange.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	result, err, _ := s.refreshGroup.Do(refreshToken, func() (interface{}, error) {
		return s.doRefresh(ctx, refreshToken)
	})
	if err != nil {
		return nil, err
	}
	return result.(*auth.TokenPair), nil
}

func (s *AuthService) doRefresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if blacklisted {
		s.clearSession(ctx, claims.UserID)
		return nil, auth.ErrTokenBlacklisted
	}

	invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.IssuedAt.Time)
	if err != nil {
		return nil, err
	}
	if invalidated {
		s.clearSession(ctx, claims.UserID)
		return nil, auth.ErrTokenBlacklisted
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.clearSession(ctx, claims.UserID)
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.CanLogin() {
		s.clearSession(ctx, claims.UserID)
		return nil, shared.ErrUnauthorized
	}

	permissions, err := s.permissionsFor(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.RefreshTokenPair(refreshToken, user.IsStaff, user.RoleIDs, permissions)
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			s.clearSession(ctx, claims.UserID)
		}
		return nil, err
	}

	// The old refresh token is single-use
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to blacklist used refresh token", zap.Error(err))
	}
	s.saveSession(ctx, user, pair)
	return pair, nil
}

// Logout invalidates the presented tokens and drops the stored session
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if claims, err := s.jwtService.ValidateAccessToken(accessToken); err == nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			return err
		}
		s.clearSession(ctx, claims.UserID)
	}
	if refreshToken == "" {
		return nil
	}
	if claims, err := s.jwtService.ValidateRefreshToken(refreshToken); err == nil {
		if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			return err
		}
		s.clearSession(ctx, claims.UserID)
	}
	return nil
}

// LogoutAll invalidates every token issued to the user before now
func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID, refreshTTL time.Duration) error {
	s.clearSession(ctx, userID.String())
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), refreshTTL)
}

// ChangePassword changes the user's password and invalidates existing tokens
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest, refreshTTL time.Duration) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	s.clearSession(ctx, userID.String())
	return s.blacklist.AddUserTokensToBlacklist(ctx, userID.String(), refreshTTL)
}

// Me returns the authenticated user's profile
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// issueTokens builds a token pair carrying the user's roles and permissions
func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*auth.TokenPair, error) {
	permissions, err := s.permissionsFor(ctx, user)
	if err != nil {
		return nil, err
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      user.ID,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		RoleIDs:     user.RoleIDs,
		Permissions: permissions,
	})
	if err != nil {
		return nil, err
	}
	s.saveSession(ctx, user, pair)
	return pair, nil
}

// saveSession records the user's current session. Session failures are
// logged, not surfaced; the tokens remain usable either way.
func (s *AuthService) saveSession(ctx context.Context, user *identity.User, pair *auth.TokenPair) {
	if s.sessions == nil {
		return
	}
	session := &auth.Session{
		UserID:       user.ID.String(),
		Email:        user.Email,
		IsStaff:      user.IsStaff,
		RefreshJTI:   pair.RefreshJTI,
		RefreshCount: pair.RefreshCount,
		RefreshedAt:  time.Now(),
	}
	if err := s.sessions.Save(ctx, session, s.jwtService.GetRefreshTokenExpiration()); err != nil {
		s.logger.Warn("Failed to save session",
			zap.String("user_id", session.UserID), zap.Error(err))
	}
}

func (s *AuthService) clearSession(ctx context.Context, userID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to delete session",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// permissionsFor collects the distinct permission codes granted through
// the user's enabled roles.
func (s *AuthService) permissionsFor(ctx context.Context, user *identity.User) ([]string, error) {
	if !user.IsStaff || len(user.RoleIDs) == 0 {
		return nil, nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, user.RoleIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	permissions := make([]string, 0)
	for _, role := range roles {
		if !role.IsEnabled {
			continue
		}
		for _, perm := range role.Permissions {
			if !seen[perm.Code] {
				seen[perm.Code] = true
				permissions = append(permissions, perm.Code)
			}
		}
	}
	return permissions, nil
}

// publishDomainEvents hands the aggregate's events to the bus. Event
// delivery is asynchronous; failures are logged by the bus, not
// propagated to the caller.
func (s *AuthService) publishDomainEvents(ctx context.Context, user *identity.User) {
	if s.eventBus == nil {
		return
	}
	events := user.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventBus.Publish(ctx, events...)
	user.ClearDomainEvents()
}
