package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"biblioteca/internal/errors"
	"biblioteca/internal/model"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful registration hashes the password",
			input: RegisterUserInput{
				Nome:   "Maria Silva",
				Email:  "maria@email.com",
				Senha:  "cliente123",
				Perfil: model.PerfilCliente,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "maria@email.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return bcrypt.CompareHashAndPassword([]byte(u.SenhaHash), []byte("cliente123")) == nil
				})).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "email already registered",
			input: RegisterUserInput{
				Nome:   "Maria Silva",
				Email:  "maria@email.com",
				Senha:  "cliente123",
				Perfil: model.PerfilCliente,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "maria@email.com").
					Return(&model.User{ID: 2, Email: "maria@email.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name: "rejects unknown role",
			input: RegisterUserInput{
				Nome:   "Maria Silva",
				Email:  "maria@email.com",
				Senha:  "cliente123",
				Perfil: "gerente",
			},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidPerfil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			user, err := svc.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.NotEqual(t, tt.input.Senha, user.SenhaHash)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	maria := &model.User{ID: 2, Nome: "Maria Silva", Email: "maria@email.com", Perfil: model.PerfilCliente}

	t.Run("staff can read any user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(maria, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), staffClaims(1), 2)

		assert.NoError(t, err)
		assert.Equal(t, maria.Email, user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("client can read own record", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(maria, nil)

		svc := NewUserService(mockRepo, nil)
		user, err := svc.GetUser(context.Background(), clienteClaims(2), 2)

		assert.NoError(t, err)
		assert.Equal(t, maria.ID, user.ID)
	})

	t.Run("client cannot read another user", func(t *testing.T) {
		svc := NewUserService(new(MockUserRepository), nil)
		user, err := svc.GetUser(context.Background(), clienteClaims(3), 2)

		assert.Equal(t, errors.ErrForbidden, err)
		assert.Nil(t, user)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, nil)
		_, err := svc.GetUser(context.Background(), staffClaims(1), 9)
		assert.Equal(t, errors.ErrUserNotFound, err)
	})
}
