package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"biblioteca/internal/model"
	"biblioteca/internal/repository"
	"biblioteca/internal/service"
)

// MockBookService is a mock implementation of BookService.
type MockBookService struct {
	mock.Mock
}

func (m *MockBookService) ListBooks(ctx context.Context, filter repository.BookFilter) ([]model.Book, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Book), args.Error(1)
}

func (m *MockBookService) GetBook(ctx context.Context, id uint) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) CreateBook(ctx context.Context, input service.CreateBookInput) (*model.Book, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) UpdateBook(ctx context.Context, id uint, input service.UpdateBookInput) (*model.Book, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookService) DeleteBook(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func updateContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/livros/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")
	return c, rec
}

func TestBookHandler_UpdateRejectsEmptyBody(t *testing.T) {
	mockSvc := new(MockBookService)
	h := NewBookHandler(mockSvc)

	c, _ := updateContext(`{}`)
	err := h.Update(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	mockSvc.AssertNotCalled(t, "UpdateBook", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookHandler_UpdateWithFields(t *testing.T) {
	mockSvc := new(MockBookService)
	mockSvc.On("UpdateBook", mock.Anything, uint(1), mock.MatchedBy(func(in service.UpdateBookInput) bool {
		return in.Titulo != nil && *in.Titulo == "Novo Título"
	})).Return(&model.Book{ID: 1, Titulo: "Novo Título"}, nil)
	h := NewBookHandler(mockSvc)

	c, rec := updateContext(`{"titulo": "Novo Título"}`)
	err := h.Update(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Livro atualizado com sucesso")
	mockSvc.AssertExpectations(t)
}
