package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"biblioteca/internal/model"
)

// ReservationRepository defines the reservation ledger persistence
// operations. The book-row accessors are included so a single
// transaction-scoped repository can cover the reservation write and the
// availability adjustment it implies.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Reservation, error)
	FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*model.Reservation, error)
	ListAll(ctx context.Context) ([]model.ReservationView, error)
	ListByUser(ctx context.Context, userID uint) ([]model.ReservationView, error)
	FindBookForUpdate(ctx context.Context, bookID uint) (*model.Book, error)
	UpdateBookAvailability(ctx context.Context, bookID uint, available int) error
	// WithTransaction executes fn against a transaction-scoped repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReservationRepository) error) error
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository.
func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// Create creates a new reservation record.
func (r *reservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

// Update updates an existing reservation record.
func (r *reservationRepository) Update(ctx context.Context, reservation *model.Reservation) error {
	return r.db.WithContext(ctx).Save(reservation).Error
}

// Delete removes a reservation record.
func (r *reservationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Reservation{}, id).Error
}

// FindByID finds a reservation by ID.
func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*model.Reservation, error) {
	var reservation model.Reservation
	if err := r.db.WithContext(ctx).First(&reservation, id).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// FindActiveByUserAndBook finds the active reservation a user holds on a
// book, if any. At most one can exist at a time.
func (r *reservationRepository) FindActiveByUserAndBook(ctx context.Context, userID, bookID uint) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND livro_id = ? AND status = ?", userID, bookID, model.ReservationStatusAtiva).
		First(&reservation).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

const reservationViewSelect = `reservas.id, reservas.livro_id, livros.titulo AS livro_titulo,
livros.autor AS livro_autor, reservas.data_reserva, reservas.data_devolucao, reservas.status`

// ListAll returns every reservation with user and book fields
// denormalized, most recent first. Ties on data_reserva break by id so
// the ordering stays stable at second-granularity timestamps.
func (r *reservationRepository) ListAll(ctx context.Context) ([]model.ReservationView, error) {
	var views []model.ReservationView
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Select(reservationViewSelect + ", reservas.usuario_id, usuarios.nome AS usuario_nome, usuarios.email AS usuario_email").
		Joins("JOIN usuarios ON usuarios.id = reservas.usuario_id").
		Joins("JOIN livros ON livros.id = reservas.livro_id").
		Order("reservas.data_reserva DESC, reservas.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// ListByUser returns one user's reservations, most recent first.
func (r *reservationRepository) ListByUser(ctx context.Context, userID uint) ([]model.ReservationView, error) {
	var views []model.ReservationView
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Select(reservationViewSelect).
		Joins("JOIN livros ON livros.id = reservas.livro_id").
		Where("reservas.usuario_id = ?", userID).
		Order("reservas.data_reserva DESC, reservas.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// FindBookForUpdate finds a book by ID with row-level lock for update.
func (r *reservationRepository) FindBookForUpdate(ctx context.Context, bookID uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", bookID).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBookAvailability sets the available copy count of a book.
func (r *reservationRepository) UpdateBookAvailability(ctx context.Context, bookID uint, available int) error {
	return r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", bookID).
		Update("quantidade_disponivel", available).Error
}

// WithTransaction executes a function within a database transaction.
func (r *reservationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo ReservationRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &reservationRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
