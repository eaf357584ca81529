package errors

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("usuário não encontrado")
	// ErrBookNotFound is returned when a book is not found.
	ErrBookNotFound = errors.New("livro não encontrado")
	// ErrReservationNotFound is returned when a reservation is not found.
	ErrReservationNotFound = errors.New("reserva não encontrada")
	// ErrBookUnavailable is returned when a book has no available copies.
	ErrBookUnavailable = errors.New("livro indisponível no momento")
	// ErrDuplicateReservation is returned when the user already holds an
	// active reservation of the same book.
	ErrDuplicateReservation = errors.New("você já possui uma reserva ativa deste livro")
	// ErrAlreadyReturned is returned when returning a reservation twice.
	ErrAlreadyReturned = errors.New("livro já foi devolvido")
	// ErrActiveReservations blocks deleting a book that is still on loan.
	ErrActiveReservations = errors.New("não é possível deletar livro com reservas ativas")
	// ErrEmailTaken is returned when registering a duplicate email.
	ErrEmailTaken = errors.New("email já cadastrado")
	// ErrISBNTaken is returned when registering a duplicate ISBN.
	ErrISBNTaken = errors.New("isbn já cadastrado")
	// ErrForbidden is returned on role or ownership denial.
	ErrForbidden = errors.New("acesso negado")
	// ErrInvalidPerfil is returned when the perfil field is not a known role.
	ErrInvalidPerfil = errors.New(`perfil inválido. Use "funcionario" ou "cliente"`)
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Mensagem string `json:"mensagem"`
	Code     string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Mensagem: e.Message,
		Code:     e.Code,
	}
}

// MySQL error numbers signalling row-lock contention. Both are
// retryable: the client repeats the request and one writer wins.
const (
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

// MapErrorToHTTP maps domain errors to HTTP errors. Status codes follow
// the original API contract: availability and double-return conflicts are
// 400, duplicate unique fields are 409. Lock contention on the book row
// is a retryable 409.
func MapErrorToHTTP(err error) *HTTPError {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlErrLockWaitTimeout, mysqlErrDeadlock:
			return NewHTTPError(http.StatusConflict, "conflito de concorrência, tente novamente", "LOCK_CONTENTION")
		}
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrBookNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOK_NOT_FOUND")
	case errors.Is(err, ErrReservationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RESERVATION_NOT_FOUND")
	case errors.Is(err, ErrBookUnavailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BOOK_UNAVAILABLE")
	case errors.Is(err, ErrDuplicateReservation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_RESERVATION")
	case errors.Is(err, ErrAlreadyReturned):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_RETURNED")
	case errors.Is(err, ErrActiveReservations):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ACTIVE_RESERVATIONS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrISBNTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "ISBN_TAKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrInvalidPerfil):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PERFIL")
	default:
		return NewHTTPError(http.StatusInternalServerError, "erro interno do servidor", "INTERNAL_ERROR")
	}
}
