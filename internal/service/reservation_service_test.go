package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"biblioteca/internal/auth"
	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

// MockReservationRepository is a mock implementation of ReservationRepository.
// WithTransaction runs the callback against the mock itself so the
// read-check-write sequence can be asserted call by call.
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockReservationRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*model.Reservation, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListAll(ctx context.Context) ([]model.ReservationView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReservationView), args.Error(1)
}

func (m *MockReservationRepository) ListByUser(ctx context.Context, userID uint) ([]model.ReservationView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReservationView), args.Error(1)
}

func (m *MockReservationRepository) FindBookForUpdate(ctx context.Context, bookID uint) (*model.Book, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockReservationRepository) UpdateBookAvailability(ctx context.Context, bookID uint, available int) error {
	args := m.Called(ctx, bookID, available)
	return args.Error(0)
}

func (m *MockReservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.ReservationRepository) error) error {
	return fn(ctx, m)
}

func staffClaims(id uint) *auth.Claims {
	return &auth.Claims{UserID: id, Perfil: model.PerfilFuncionario}
}

func clienteClaims(id uint) *auth.Claims {
	return &auth.Claims{UserID: id, Perfil: model.PerfilCliente}
}

func TestReservationService_Reserve(t *testing.T) {
	tests := []struct {
		name          string
		userID        uint
		bookID        uint
		setupMock     func(*MockReservationRepository)
		expectedError error
	}{
		{
			name:   "successful reservation decrements availability",
			userID: 2,
			bookID: 1,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindBookForUpdate", mock.Anything, uint(1)).
					Return(&model.Book{ID: 1, QuantidadeTotal: 3, QuantidadeDisponivel: 3}, nil)
				m.On("FindActiveByUserAndBook", mock.Anything, uint(2), uint(1)).
					Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(nil)
				m.On("UpdateBookAvailability", mock.Anything, uint(1), 2).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "book not found",
			userID: 2,
			bookID: 99,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindBookForUpdate", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrBookNotFound,
		},
		{
			name:   "no copies available",
			userID: 2,
			bookID: 1,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindBookForUpdate", mock.Anything, uint(1)).
					Return(&model.Book{ID: 1, QuantidadeTotal: 1, QuantidadeDisponivel: 0}, nil)
			},
			expectedError: errors.ErrBookUnavailable,
		},
		{
			name:   "duplicate active reservation",
			userID: 2,
			bookID: 1,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindBookForUpdate", mock.Anything, uint(1)).
					Return(&model.Book{ID: 1, QuantidadeTotal: 3, QuantidadeDisponivel: 2}, nil)
				m.On("FindActiveByUserAndBook", mock.Anything, uint(2), uint(1)).
					Return(&model.Reservation{ID: 7, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusAtiva}, nil)
			},
			expectedError: errors.ErrDuplicateReservation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReservationRepository)
			tt.setupMock(mockRepo)

			svc := NewReservationService(mockRepo, nil)
			reservation, err := svc.Reserve(context.Background(), tt.userID, tt.bookID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, reservation)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, reservation)
				assert.Equal(t, model.ReservationStatusAtiva, reservation.Status)
				assert.Equal(t, tt.userID, reservation.UsuarioID)
				assert.Equal(t, tt.bookID, reservation.LivroID)
				assert.Nil(t, reservation.DataDevolucao)
				assert.False(t, reservation.DataReserva.IsZero())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReservationService_Return(t *testing.T) {
	tests := []struct {
		name          string
		actor         *auth.Claims
		reservationID uint
		setupMock     func(*MockReservationRepository)
		expectedError error
	}{
		{
			name:          "owner returns active reservation",
			actor:         clienteClaims(2),
			reservationID: 5,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.Reservation{ID: 5, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusAtiva}, nil)
				m.On("FindBookForUpdate", mock.Anything, uint(1)).
					Return(&model.Book{ID: 1, QuantidadeTotal: 3, QuantidadeDisponivel: 2}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(r *model.Reservation) bool {
					return r.Status == model.ReservationStatusDevolvida && r.DataDevolucao != nil
				})).Return(nil)
				m.On("UpdateBookAvailability", mock.Anything, uint(1), 3).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "staff returns another user's reservation",
			actor:         staffClaims(1),
			reservationID: 5,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.Reservation{ID: 5, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusAtiva}, nil)
				m.On("FindBookForUpdate", mock.Anything, uint(1)).
					Return(&model.Book{ID: 1, QuantidadeTotal: 3, QuantidadeDisponivel: 2}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Reservation")).Return(nil)
				m.On("UpdateBookAvailability", mock.Anything, uint(1), 3).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "client cannot return someone else's reservation",
			actor:         clienteClaims(3),
			reservationID: 5,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.Reservation{ID: 5, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusAtiva}, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:          "second return is rejected without touching the book",
			actor:         clienteClaims(2),
			reservationID: 5,
			setupMock: func(m *MockReservationRepository) {
				returned := time.Now()
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.Reservation{ID: 5, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusDevolvida, DataDevolucao: &returned}, nil)
			},
			expectedError: errors.ErrAlreadyReturned,
		},
		{
			name:          "reservation not found",
			actor:         clienteClaims(2),
			reservationID: 42,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrReservationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReservationRepository)
			tt.setupMock(mockRepo)

			svc := NewReservationService(mockRepo, nil)
			returnedAt, err := svc.Return(context.Background(), tt.actor, tt.reservationID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				assert.False(t, returnedAt.IsZero())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReservationService_Cancel(t *testing.T) {
	tests := []struct {
		name          string
		reservationID uint
		setupMock     func(*MockReservationRepository)
		expectedError error
	}{
		{
			name:          "canceling an active reservation restores the copy",
			reservationID: 5,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(5)).
					Return(&model.Reservation{ID: 5, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusAtiva}, nil)
				m.On("FindBookForUpdate", mock.Anything, uint(1)).
					Return(&model.Book{ID: 1, QuantidadeTotal: 3, QuantidadeDisponivel: 2}, nil)
				m.On("UpdateBookAvailability", mock.Anything, uint(1), 3).Return(nil)
				m.On("Delete", mock.Anything, uint(5)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "canceling a returned reservation leaves the count alone",
			reservationID: 6,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(6)).
					Return(&model.Reservation{ID: 6, UsuarioID: 2, LivroID: 1, Status: model.ReservationStatusDevolvida}, nil)
				m.On("Delete", mock.Anything, uint(6)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:          "reservation not found",
			reservationID: 42,
			setupMock: func(m *MockReservationRepository) {
				m.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrReservationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockReservationRepository)
			tt.setupMock(mockRepo)

			svc := NewReservationService(mockRepo, nil)
			err := svc.Cancel(context.Background(), tt.reservationID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestReservationService_List(t *testing.T) {
	staffRows := []model.ReservationView{
		{ID: 2, LivroID: 1, UsuarioID: 3, UsuarioNome: "Maria Silva"},
		{ID: 1, LivroID: 2, UsuarioID: 2, UsuarioNome: "João Santos"},
	}
	ownRows := []model.ReservationView{{ID: 1, LivroID: 2}}

	t.Run("staff sees every reservation", func(t *testing.T) {
		mockRepo := new(MockReservationRepository)
		mockRepo.On("ListAll", mock.Anything).Return(staffRows, nil)

		svc := NewReservationService(mockRepo, nil)
		got, err := svc.List(context.Background(), staffClaims(1))

		assert.NoError(t, err)
		assert.Equal(t, staffRows, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("client only sees own reservations", func(t *testing.T) {
		mockRepo := new(MockReservationRepository)
		mockRepo.On("ListByUser", mock.Anything, uint(2)).Return(ownRows, nil)

		svc := NewReservationService(mockRepo, nil)
		got, err := svc.List(context.Background(), clienteClaims(2))

		assert.NoError(t, err)
		assert.Equal(t, ownRows, got)
		mockRepo.AssertExpectations(t)
	})
}
