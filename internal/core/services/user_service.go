package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/hangang-korean/admin-service/internal/core/domain"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type UserService struct {
	userRepo ports.UserRepository
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(userRepo ports.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) ([]domain.User, int, error) {
	if filter.Role != nil && !filter.Role.Valid() {
		return nil, 0, &domain.ValidationError{Field: "role", Reason: "unknown role"}
	}
	filter.Page, filter.PerPage = normalizePagination(filter.Page, filter.PerPage)
	return s.userRepo.List(ctx, filter)
}

func (s *UserService) Create(ctx context.Context, params ports.CreateUserParams) (*domain.User, error) {
	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	if !emailPattern.MatchString(params.Email) {
		return nil, &domain.ValidationError{Field: "email", Reason: "malformed address"}
	}
	if params.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "required"}
	}
	if !params.Role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Reason: "unknown role"}
	}

	user := domain.User{
		Email:  params.Email,
		Name:   params.Name,
		Role:   params.Role,
		Status: domain.UserActive,
	}

	// Staff accounts log in to the dashboard; students created here are
	// profile-only and may stay passwordless.
	if params.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	return s.userRepo.Create(ctx, user)
}

func (s *UserService) Update(ctx context.Context, id int64, params ports.UpdateUserParams) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, &domain.ValidationError{Field: "name", Reason: "required"}
		}
		user.Name = *params.Name
	}
	if params.Role != nil {
		if !params.Role.Valid() {
			return nil, &domain.ValidationError{Field: "role", Reason: "unknown role"}
		}
		user.Role = *params.Role
	}
	if params.Status != nil {
		if !params.Status.Valid() {
			return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
		}
		user.Status = *params.Status
	}

	return s.userRepo.Update(ctx, *user)
}
