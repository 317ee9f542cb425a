package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"inventra/internal/model"
	"inventra/internal/repository"
)

// UserService exposes user domain operations. Passwords are bcrypt-hashed
// here before they ever reach the repository.
type UserService interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	BulkCreate(ctx context.Context, users []model.User) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, patch *model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *userService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	hashed, err := hashPassword(user.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id.Hex())
}

func (s *userService) BulkCreate(ctx context.Context, users []model.User) ([]model.User, error) {
	for i := range users {
		hashed, err := hashPassword(users[i].Password)
		if err != nil {
			return nil, err
		}
		users[i].Password = hashed
	}

	ids, err := s.repo.BulkCreate(ctx, users)
	if err != nil {
		return nil, err
	}
	created := make([]model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.repo.FindByID(ctx, id.Hex())
		if err != nil {
			return nil, err
		}
		created = append(created, *user)
	}
	return created, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Update(ctx context.Context, id string, patch *model.UserPatch) (*model.User, error) {
	if patch.Password != nil {
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashed
	}

	if _, err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
