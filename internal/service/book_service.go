package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"biblioteca/internal/cache"
	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
)

const bookCacheTTL = 5 * time.Minute

// CreateBookInput holds the fields accepted at book registration.
type CreateBookInput struct {
	Titulo          string
	Autor           string
	ISBN            string
	AnoPublicacao   *int
	Categoria       string
	QuantidadeTotal int
}

// UpdateBookInput holds the optional fields of a partial book update.
// Nil means "leave unchanged".
type UpdateBookInput struct {
	Titulo          *string
	Autor           *string
	ISBN            *string
	AnoPublicacao   *int
	Categoria       *string
	QuantidadeTotal *int
}

// BookService exposes the catalog operations.
type BookService interface {
	ListBooks(ctx context.Context, filter repository.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id uint) (*model.Book, error)
	CreateBook(ctx context.Context, input CreateBookInput) (*model.Book, error)
	UpdateBook(ctx context.Context, id uint, input UpdateBookInput) (*model.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

type bookService struct {
	repo  repository.BookRepository
	cache *cache.Client
}

// NewBookService creates a new book service.
func NewBookService(repo repository.BookRepository, cache *cache.Client) BookService {
	return &bookService{repo: repo, cache: cache}
}

func (s *bookService) cacheKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// ListBooks returns catalog entries matching the filter. An empty result
// is not an error.
func (s *bookService) ListBooks(ctx context.Context, filter repository.BookFilter) ([]model.Book, error) {
	return s.repo.List(ctx, filter)
}

// GetBook retrieves a book by ID with caching.
func (s *bookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Book
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrBookNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(book); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, bookCacheTTL)
	}
	return book, nil
}

// CreateBook registers a new book. All copies start available.
func (s *bookService) CreateBook(ctx context.Context, input CreateBookInput) (*model.Book, error) {
	if input.ISBN != "" {
		existing, err := s.repo.FindByISBN(ctx, input.ISBN)
		if err == nil && existing != nil {
			return nil, errors.ErrISBNTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check isbn: %w", err)
		}
	}

	book := &model.Book{
		Titulo:               input.Titulo,
		Autor:                input.Autor,
		ISBN:                 input.ISBN,
		AnoPublicacao:        input.AnoPublicacao,
		Categoria:            input.Categoria,
		QuantidadeTotal:      input.QuantidadeTotal,
		QuantidadeDisponivel: input.QuantidadeTotal,
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

// UpdateBook applies a partial update. Changing quantidade_total shifts
// quantidade_disponivel by the same delta, clamped to [0, total]; the
// book row is locked so the shift cannot race a concurrent reservation.
func (s *bookService) UpdateBook(ctx context.Context, id uint, input UpdateBookInput) (*model.Book, error) {
	var updated *model.Book

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookRepository) error {
		book, err := txRepo.FindByIDForUpdate(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotFound
			}
			return err
		}

		if input.ISBN != nil && *input.ISBN != "" && *input.ISBN != book.ISBN {
			existing, err := txRepo.FindByISBN(ctx, *input.ISBN)
			if err == nil && existing != nil {
				return errors.ErrISBNTaken
			}
			if err != nil && err != gorm.ErrRecordNotFound {
				return fmt.Errorf("check isbn: %w", err)
			}
		}

		if input.Titulo != nil {
			book.Titulo = *input.Titulo
		}
		if input.Autor != nil {
			book.Autor = *input.Autor
		}
		if input.ISBN != nil {
			book.ISBN = *input.ISBN
		}
		if input.AnoPublicacao != nil {
			book.AnoPublicacao = input.AnoPublicacao
		}
		if input.Categoria != nil {
			book.Categoria = *input.Categoria
		}
		if input.QuantidadeTotal != nil {
			delta := *input.QuantidadeTotal - book.QuantidadeTotal
			book.QuantidadeTotal = *input.QuantidadeTotal
			book.QuantidadeDisponivel += delta
			if book.QuantidadeDisponivel < 0 {
				book.QuantidadeDisponivel = 0
			}
			if book.QuantidadeDisponivel > book.QuantidadeTotal {
				book.QuantidadeDisponivel = book.QuantidadeTotal
			}
		}

		if err := txRepo.Update(ctx, book); err != nil {
			return fmt.Errorf("update book: %w", err)
		}
		updated = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return updated, nil
}

// DeleteBook removes a book unless a reservation on it is still active.
func (s *bookService) DeleteBook(ctx context.Context, id uint) error {
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.BookRepository) error {
		active, err := txRepo.CountActiveReservations(ctx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return errors.ErrActiveReservations
		}

		if err := txRepo.Delete(ctx, id); err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrBookNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}
