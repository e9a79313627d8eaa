package service

import (
	"context"
	"errors"

	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/microservices/http-api/validation"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	// UpdateProfile applies a self-update; role can not change through it.
	UpdateProfile(ctx context.Context, caller *models.User, req dto.UpdateProfileRequest) (*models.User, error)
	// CreateSuperuser makes an active admin superuser, for operator tooling.
	CreateSuperuser(ctx context.Context, username, email string) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) ([]models.User, int64, error) {
	return s.userRepo.List(ctx, search, page, pageSize)
}

// Create is the admin path: accounts made here are active immediately.
func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if err := validation.Account(req.Username, req.Email); err != nil {
		return nil, err
	}
	if err := validation.Role(role); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
		IsActive:  true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, req, s.userRepo.Update)
}

func (s *userService) UpdateProfile(ctx context.Context, caller *models.User, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, user, req.AsAdminUpdate(), s.userRepo.UpdateProfile)
}

// apply validates the merged record, supplied values over current ones,
// before handing it to save.
func (s *userService) apply(ctx context.Context, user *models.User, req dto.UpdateUserRequest,
	save func(context.Context, *models.User) error) (*models.User, error) {
	updated := *user
	req.ApplyTo(&updated)

	if err := validation.Account(updated.Username, updated.Email); err != nil {
		return nil, err
	}
	if err := validation.Role(updated.Role); err != nil {
		return nil, err
	}
	if err := save(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}

func (s *userService) CreateSuperuser(ctx context.Context, username, email string) (*models.User, error) {
	if err := validation.Account(username, email); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return nil, repository.ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user := &models.User{
		Username:    username,
		Email:       email,
		Role:        models.RoleAdmin,
		IsStaff:     true,
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
