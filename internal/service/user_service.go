package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"biblioteca/internal/auth"
	"biblioteca/internal/cache"
	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// RegisterUserInput holds the fields accepted at user registration.
type RegisterUserInput struct {
	Nome     string
	Email    string
	Senha    string
	Perfil   string
	Telefone string
}

// UserService exposes user registration and lookup.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*model.User, error)
	GetUser(ctx context.Context, actor *auth.Claims, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a new user with a bcrypt password hash. Staff-only;
// role enforcement happens at the route.
func (s *userService) Register(ctx context.Context, input RegisterUserInput) (*model.User, error) {
	if !model.ValidPerfil(input.Perfil) {
		return nil, errors.ErrInvalidPerfil
	}

	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Senha), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Nome:      input.Nome,
		Email:     input.Email,
		SenhaHash: string(hashed),
		Perfil:    input.Perfil,
		Telefone:  input.Telefone,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID with caching. Clients may only read
// their own record.
func (s *userService) GetUser(ctx context.Context, actor *auth.Claims, id uint) (*model.User, error) {
	if actor.Perfil == model.PerfilCliente && actor.UserID != id {
		return nil, errors.ErrForbidden
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListUsers returns every registered user.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}
