package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"biblioteca/internal/model"
)

// BookFilter holds the optional catalog listing filters. String filters
// are substring matches and all provided filters are ANDed.
type BookFilter struct {
	Titulo     string
	Autor      string
	Categoria  string
	Disponivel bool
}

// BookRepository defines book persistence operations.
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	Update(ctx context.Context, book *model.Book) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Book, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*model.Book, error)
	List(ctx context.Context, filter BookFilter) ([]model.Book, error)
	CountActiveReservations(ctx context.Context, bookID uint) (int64, error)
	// WithTransaction executes fn against a transaction-scoped repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookRepository) error) error
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

// Create creates a new book.
func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// Update updates an existing book.
func (r *bookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete removes a book.
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Book{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a book by ID.
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDForUpdate finds a book by ID with row-level lock for update.
func (r *bookRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByISBN finds a book by its ISBN.
func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// List returns books matching the filter.
func (r *bookRepository) List(ctx context.Context, filter BookFilter) ([]model.Book, error) {
	q := r.db.WithContext(ctx).Model(&model.Book{})

	if filter.Titulo != "" {
		q = q.Where("titulo LIKE ?", "%"+filter.Titulo+"%")
	}
	if filter.Autor != "" {
		q = q.Where("autor LIKE ?", "%"+filter.Autor+"%")
	}
	if filter.Categoria != "" {
		q = q.Where("categoria LIKE ?", "%"+filter.Categoria+"%")
	}
	if filter.Disponivel {
		q = q.Where("quantidade_disponivel > 0")
	}

	var books []model.Book
	if err := q.Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// CountActiveReservations counts reservations still active on a book.
func (r *bookRepository) CountActiveReservations(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("livro_id = ? AND status = ?", bookID, model.ReservationStatusAtiva).
		Count(&count).Error
	return count, err
}

// WithTransaction executes a function within a database transaction.
func (r *bookRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo BookRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &bookRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
