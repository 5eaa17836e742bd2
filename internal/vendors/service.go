package vendors

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/businessgurujee/businessgurujee/backend/go-services/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

// Service encapsulates vendor account logic
type Service struct {
	repo Repository
	cost int
}

func NewService(r Repository) *Service {
	return &Service{repo: r, cost: bcrypt.DefaultCost}
}

// RegisterInput is the self-service sign-up form.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Register creates a vendor account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Vendor, error) {
	return s.create(ctx, in, models.RoleVendor)
}

func (s *Service) create(ctx context.Context, in RegisterInput, role string) (*models.Vendor, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.Invalid("name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, models.Invalid("a valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, models.Invalid("password must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, err
	}
	v := &models.Vendor{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Authenticate checks email and password; returns the vendor when valid.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.Vendor, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, models.ErrUnauthorized
	}
	v, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthorized
		}
		return nil, err
	}
	if v.PasswordHash == "" {
		return nil, models.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrUnauthorized
	}
	if !v.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", models.ErrForbidden)
	}
	return v, nil
}

// UpsertFromClaims creates or updates a vendor using OIDC claims map
func (s *Service) UpsertFromClaims(ctx context.Context, claims map[string]interface{}) (*models.Vendor, error) {
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	if sub == "" {
		return nil, models.Invalid("token has no subject")
	}
	if email == "" {
		return nil, models.Invalid("token has no email claim")
	}
	v := &models.Vendor{
		Sub:   sub,
		Email: normalizeEmail(email),
		Name:  strings.TrimSpace(name),
	}
	if v.Name == "" {
		v.Name = v.Email
	}
	out, err := s.repo.UpsertBySub(ctx, v)
	if err != nil {
		return nil, err
	}
	if !out.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", models.ErrForbidden)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Vendor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, page models.PageRequest) (models.Page[models.Vendor], error) {
	return s.repo.List(ctx, page)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ToggleActive flips the account's active flag and returns the new value.
func (s *Service) ToggleActive(ctx context.Context, id string) (bool, error) {
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	next := !v.IsActive
	if err := s.repo.SetActive(ctx, id, next); err != nil {
		return false, err
	}
	return next, nil
}

// EnsureAdmin creates an admin account unless the email is already registered.
// Returns true when an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if _, err := s.repo.GetByEmail(ctx, normalizeEmail(email)); err == nil {
		return false, nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return false, err
	}
	if _, err := s.create(ctx, RegisterInput{Name: name, Email: email, Password: password}, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}
