package identity

import (
	"context"
	"errors"
	"time"

	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/chickenviken/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CustomerService handles storefront accounts and their address books
type CustomerService struct {
	customers identity.CustomerRepository
	tokens    *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customers identity.CustomerRepository, tokens *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		tokens:    tokens,
		blacklist: blacklist,
		logger:    logger,
	}
}

// SignUp creates a storefront account
func (s *CustomerService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if _, err := s.customers.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.ErrAlreadyExists
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	customer, err := identity.NewCustomer(req.Name, req.Email, hash)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("customer registered", zap.String("email", customer.Email))
	return s.issueToken(customer)
}

// SignIn authenticates a customer and stamps the login time
func (s *CustomerService) SignIn(ctx context.Context, req SignInRequest) (*AuthResponse, error) {
	customer, err := s.customers.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}
	if !auth.CheckPassword(req.Password, customer.PasswordHash) {
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	customer.RecordLogin(time.Now())
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}

	return s.issueToken(customer)
}

// SignOut revokes the presented token
func (s *CustomerService) SignOut(ctx context.Context, claims *auth.Claims) error {
	return s.blacklist.AddToBlacklist(ctx, claims.ID, claims.GetRemainingTTL())
}

// GetProfile returns the signed-in customer's account
func (s *CustomerService) GetProfile(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateProfile edits the customer's display fields
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID uuid.UUID, req UpdateProfileRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.UpdateProfile(req.Name, req.Phone); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// AddAddress appends a saved address
func (s *CustomerService) AddAddress(ctx context.Context, customerID uuid.UUID, req AddressRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if _, err := customer.AddAddress(identity.Address{
		Name: req.Name, Phone: req.Phone,
		Street: req.Street, City: req.City, State: req.State, Zip: req.Zip,
	}); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateAddress replaces a saved address, keeping its id
func (s *CustomerService) UpdateAddress(ctx context.Context, customerID uuid.UUID, addressID string, req AddressRequest) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.UpdateAddress(addressID, identity.Address{
		Name: req.Name, Phone: req.Phone,
		Street: req.Street, City: req.City, State: req.State, Zip: req.Zip,
	}); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// RemoveAddress deletes a saved address
func (s *CustomerService) RemoveAddress(ctx context.Context, customerID uuid.UUID, addressID string) (*CustomerResponse, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := customer.RemoveAddress(addressID); err != nil {
		return nil, err
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List returns storefront accounts for the dashboard's user management view
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	customers, err := s.customers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a storefront account and kills its sessions
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	if err := s.customers.Delete(ctx, customerID); err != nil {
		return err
	}
	if s.blacklist != nil {
		if err := s.blacklist.InvalidateUserTokens(ctx, customerID.String(), s.tokens.TokenExpiration()); err != nil {
			s.logger.Warn("failed to invalidate customer sessions",
				zap.String("customer_id", customerID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (s *CustomerService) issueToken(customer *identity.Customer) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(auth.GenerateTokenInput{
		Namespace: auth.NamespaceUser,
		UserID:    customer.ID,
		Email:     customer.Email,
	})
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &AuthResponse{Token: token, ExpiresAt: expiresAt, Customer: &response}, nil
}
