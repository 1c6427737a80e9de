package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/restaurant-pos/internal/apperr"
)

type Service struct {
	repo       Repository
	adminEmail string
	log        *zap.Logger
}

// NewService returns an account service. Registrations using adminEmail get
// the Admin role; everyone else is Staff.
func NewService(repo Repository, adminEmail string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, adminEmail: strings.ToLower(strings.TrimSpace(adminEmail)), log: log.Named("user")}
}

func (s *Service) RoleFor(email string) Role {
	if s.adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), s.adminEmail) {
		return RoleAdmin
	}
	return RoleStaff
}

func (s *Service) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	if len(in.Password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  strings.TrimSpace(in.DisplayName),
		PasswordHash: hash,
		Role:         s.RoleFor(email),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrAlreadyExist) {
			return nil, apperr.Validation("email already registered")
		}
		return nil, apperr.Persistence("create user", err)
	}
	s.log.Info("user registered", zap.String("id", u.ID), zap.String("role", string(u.Role)))
	return u, nil
}

// Authenticate checks credentials and returns the account on success.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperr.Persistence("get user", err)
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound("user", id)
	}
	if err != nil {
		return nil, apperr.Persistence("get user", err)
	}
	return u, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateProfileRequest) (*User, error) {
	u := &User{ID: id, DisplayName: strings.TrimSpace(in.DisplayName), PhotoURL: strings.TrimSpace(in.PhotoURL)}
	updatePassword := false
	if in.Password != "" {
		if len(in.Password) < 6 {
			return nil, apperr.Validation("password must be at least 6 characters")
		}
		h, err := HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash, updatePassword = h, true
	}
	if err := s.repo.Update(ctx, u, updatePassword); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, apperr.Persistence("update user", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return apperr.Persistence("delete user", err)
	}
	if !ok {
		return apperr.NotFound("user", id)
	}
	return nil
}
