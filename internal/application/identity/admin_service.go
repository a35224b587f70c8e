package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/chickenviken/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminService handles admin-namespace accounts: self-service signup,
// sign-in, capability grants, and the super-admin promotion functions.
type AdminService struct {
	admins    identity.AdminRepository
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(admins identity.AdminRepository, tokens *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AdminService {
	return &AdminService{
		admins:    admins,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
	}
}

// SignUp creates an admin-namespace account. Anyone can register; the new
// account carries no capabilities until a super admin grants access, so it
// can sign in to the dashboard but operate nothing.
func (s *AdminService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if _, err := s.admins.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	admin, err := identity.NewAdmin(req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}
	if err := s.admins.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("admin account registered", zap.String("email", admin.Email))
	return s.issueToken(admin)
}

// SignIn authenticates an admin and stamps the login time
func (s *AdminService) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(req.Password, admin.PasswordHash) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	admin.RecordLogin(time.Now())
	if err := s.admins.Save(ctx, admin); err != nil {
		return nil, err
	}

	return s.issueToken(admin)
}

// SignOut revokes the presented token
func (s *AdminService) SignOut(ctx context.Context, claims *auth.Claims) error {
	return s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// Get returns one admin account
func (s *AdminService) Get(ctx context.Context, id uuid.UUID) (*AdminResponse, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAdminResponse(admin)
	return &response, nil
}

// List returns admin accounts for the dashboard
func (s *AdminService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[AdminResponse], error) {
	admins, err := s.admins.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.admins.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToAdminResponses(admins), total, filter.Page, filter.PageSize)
	return &page, nil
}

// SetCapabilities replaces an admin's capability grants. Only super admins
// may call this; existing sessions of the target keep their old token
// claims, so their tokens are invalidated.
func (s *AdminService) SetCapabilities(ctx context.Context, callerID, targetID uuid.UUID, rawCaps []string) (*AdminResponse, error) {
	if _, err := s.requireSuperAdmin(ctx, callerID); err != nil {
		return nil, err
	}

	target, err := s.admins.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	caps := make(identity.CapabilitySet, len(rawCaps))
	for i, c := range rawCaps {
		caps[i] = identity.Capability(c)
	}
	if err := target.SetCapabilities(caps); err != nil {
		return nil, err
	}
	if err := s.admins.Save(ctx, target); err != nil {
		return nil, err
	}
	s.invalidateSessions(ctx, target.ID)

	response := ToAdminResponse(target)
	return &response, nil
}

// PromoteToAdmin grants the target account the supplied role and
// capabilities. Only super admins may call it; the target must already hold
// an admin-namespace account.
func (s *AdminService) PromoteToAdmin(ctx context.Context, callerID, targetID uuid.UUID, roleRaw string, permissions []string) (*FunctionResponse, error) {
	caller, err := s.requireSuperAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_TARGET", "Target user ID is required")
	}

	role := identity.RoleAdmin
	if strings.TrimSpace(roleRaw) != "" {
		role, err = identity.ParseRole(roleRaw)
		if err != nil {
			return nil, err
		}
	}
	caps := make(identity.CapabilitySet, len(permissions))
	for i, p := range permissions {
		caps[i] = identity.Capability(p)
	}

	target, err := s.admins.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := target.Grant(role, caps, caller.ID); err != nil {
		return nil, err
	}
	if err := s.admins.Save(ctx, target); err != nil {
		return nil, err
	}
	s.invalidateSessions(ctx, target.ID)

	s.logger.Info("admin promoted",
		zap.String("target", target.Email),
		zap.String("role", string(role)),
		zap.String("by", caller.Email),
	)
	return &FunctionResponse{Success: true, Message: target.Email + " granted role " + string(role)}, nil
}

// RevokeAdminPrivileges strips super-admin rank and all capabilities from
// the target account. Callers cannot revoke themselves.
func (s *AdminService) RevokeAdminPrivileges(ctx context.Context, callerID, targetID uuid.UUID) (*FunctionResponse, error) {
	caller, err := s.requireSuperAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("MISSING_TARGET", "Target user ID is required")
	}
	if targetID == caller.ID {
		return nil, shared.NewDomainError("SELF_REVOCATION", "Cannot revoke your own privileges")
	}

	target, err := s.admins.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	target.Demote()
	if err := s.admins.Save(ctx, target); err != nil {
		return nil, err
	}
	s.invalidateSessions(ctx, target.ID)

	s.logger.Info("admin privileges revoked",
		zap.String("target", target.Email),
		zap.String("by", caller.Email),
	)
	return &FunctionResponse{Success: true, Message: "Privileges revoked for " + target.Email}, nil
}

// DeleteOwnAccount removes the caller's own admin account and kills its
// sessions
func (s *AdminService) DeleteOwnAccount(ctx context.Context, callerID uuid.UUID) error {
	if err := s.admins.Delete(ctx, callerID); err != nil {
		return err
	}
	s.invalidateSessions(ctx, callerID)
	return nil
}

func (s *AdminService) requireSuperAdmin(ctx context.Context, callerID uuid.UUID) (*identity.Admin, error) {
	caller, err := s.admins.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthenticated
		}
		return nil, err
	}
	if !caller.IsSuperAdmin() {
		return nil, shared.ErrForbidden
	}
	return caller, nil
}

// invalidateSessions kills the target's live tokens; claims baked into them
// no longer match the account
func (s *AdminService) invalidateSessions(ctx context.Context, adminID uuid.UUID) {
	if s.blacklist == nil {
		return
	}
	if err := s.blacklist.InvalidateUserTokens(ctx, adminID.String(), s.tokens.TokenExpiration()); err != nil {
		s.logger.Warn("failed to invalidate admin sessions",
			zap.String("admin_id", adminID.String()),
			zap.Error(err),
		)
	}
}

func (s *AdminService) issueToken(admin *identity.Admin) (*AuthResponse, error) {
	caps := make([]string, len(admin.Capabilities))
	for i, c := range admin.Capabilities {
		caps[i] = string(c)
	}
	token, expiresAt, err := s.tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace:    auth.NamespaceAdmin,
		UserID:       admin.ID,
		Email:        admin.Email,
		Role:         string(admin.Role),
		Capabilities: caps,
	})
	if err != nil {
		return nil, err
	}

	response := ToAdminResponse(admin)
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, Admin: &response}, nil
}
