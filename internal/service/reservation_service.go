package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"biblioteca/internal/auth"
	"biblioteca/internal/cache"
	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

// ReservationService is the inventory ledger: it owns the reservation
// lifecycle and every adjustment of a book's available copy count.
//
// Each mutation runs inside a transaction that locks the book row before
// the read-check-write sequence, so two concurrent reservations of the
// last copy cannot both succeed and quantidade_disponivel always equals
// quantidade_total minus the active reservations on the book.
type ReservationService interface {
	Reserve(ctx context.Context, userID, bookID uint) (*model.Reservation, error)
	Return(ctx context.Context, actor *auth.Claims, reservationID uint) (time.Time, error)
	Cancel(ctx context.Context, reservationID uint) error
	List(ctx context.Context, actor *auth.Claims) ([]model.ReservationView, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	cache           *cache.Client
}

// NewReservationService creates a new reservation service.
func NewReservationService(reservationRepo repository.ReservationRepository, cache *cache.Client) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		cache:           cache,
	}
}

// Reserve creates an active reservation and takes one copy off the
// book's available count, both inside one transaction.
func (s *reservationService) Reserve(ctx context.Context, userID, bookID uint) (*model.Reservation, error) {
	reservation := &model.Reservation{
		UsuarioID:   userID,
		LivroID:     bookID,
		DataReserva: time.Now(),
		Status:      model.ReservationStatusAtiva,
	}

	err := s.reservationRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReservationRepository) error {
		book, err := txRepo.FindBookForUpdate(ctx, bookID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotFound
			}
			return err
		}

		if book.QuantidadeDisponivel <= 0 {
			return errors.ErrBookUnavailable
		}

		// One active reservation per (user, book) pair.
		_, err = txRepo.FindActiveByUserAndBook(ctx, userID, bookID)
		if err == nil {
			return errors.ErrDuplicateReservation
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := txRepo.Create(ctx, reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		return txRepo.UpdateBookAvailability(ctx, bookID, book.QuantidadeDisponivel-1)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBook(ctx, bookID)
	return reservation, nil
}

// Return marks an active reservation as returned and releases its copy.
// Clients may only return their own reservations.
func (s *reservationService) Return(ctx context.Context, actor *auth.Claims, reservationID uint) (time.Time, error) {
	returnedAt := time.Now()
	var bookID uint

	err := s.reservationRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReservationRepository) error {
		reservation, err := txRepo.FindByID(ctx, reservationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrReservationNotFound
			}
			return err
		}

		if actor.Perfil == model.PerfilCliente && reservation.UsuarioID != actor.UserID {
			return errors.ErrForbidden
		}

		if reservation.Status == model.ReservationStatusDevolvida {
			return errors.ErrAlreadyReturned
		}

		book, err := txRepo.FindBookForUpdate(ctx, reservation.LivroID)
		if err != nil {
			return err
		}
		bookID = book.ID

		reservation.Status = model.ReservationStatusDevolvida
		reservation.DataDevolucao = &returnedAt
		if err := txRepo.Update(ctx, reservation); err != nil {
			return fmt.Errorf("update reservation: %w", err)
		}
		return txRepo.UpdateBookAvailability(ctx, book.ID, book.QuantidadeDisponivel+1)
	})
	if err != nil {
		return time.Time{}, err
	}

	s.invalidateBook(ctx, bookID)
	return returnedAt, nil
}

// Cancel deletes a reservation at any status. A still-active reservation
// gives its copy back to the book before the record is removed.
func (s *reservationService) Cancel(ctx context.Context, reservationID uint) error {
	var bookID uint

	err := s.reservationRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.ReservationRepository) error {
		reservation, err := txRepo.FindByID(ctx, reservationID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrReservationNotFound
			}
			return err
		}

		if reservation.Status == model.ReservationStatusAtiva {
			book, err := txRepo.FindBookForUpdate(ctx, reservation.LivroID)
			if err != nil {
				return err
			}
			bookID = book.ID
			if err := txRepo.UpdateBookAvailability(ctx, book.ID, book.QuantidadeDisponivel+1); err != nil {
				return err
			}
		}

		return txRepo.Delete(ctx, reservation.ID)
	})
	if err != nil {
		return err
	}

	if bookID != 0 {
		s.invalidateBook(ctx, bookID)
	}
	return nil
}

// List returns reservations visible to the actor: staff see everything
// with user fields attached, clients only their own rows.
func (s *reservationService) List(ctx context.Context, actor *auth.Claims) ([]model.ReservationView, error) {
	if actor.Perfil == model.PerfilFuncionario {
		return s.reservationRepo.ListAll(ctx)
	}
	return s.reservationRepo.ListByUser(ctx, actor.UserID)
}

func (s *reservationService) invalidateBook(ctx context.Context, bookID uint) {
	_ = s.cache.Delete(ctx, fmt.Sprintf("book:%d", bookID))
}
