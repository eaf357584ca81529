package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/repository"
	"biblioteca/internal/service"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new book handler.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// CreateBookRequest represents a book registration request.
type CreateBookRequest struct {
	Titulo          string `json:"titulo" validate:"required"`
	Autor           string `json:"autor" validate:"required"`
	ISBN            string `json:"isbn"`
	AnoPublicacao   *int   `json:"ano_publicacao"`
	Categoria       string `json:"categoria"`
	QuantidadeTotal *int   `json:"quantidade_total" validate:"required"`
}

// UpdateBookRequest represents a partial book update. Absent fields are
// left unchanged.
type UpdateBookRequest struct {
	Titulo          *string `json:"titulo"`
	Autor           *string `json:"autor"`
	ISBN            *string `json:"isbn"`
	AnoPublicacao   *int    `json:"ano_publicacao"`
	Categoria       *string `json:"categoria"`
	QuantidadeTotal *int    `json:"quantidade_total"`
}

// Create godoc
// @Summary Cadastra um novo livro (apenas funcionários)
// @Tags livros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookRequest true "Dados do livro"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /livros [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req CreateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Dados incompletos (titulo, autor e quantidade_total são obrigatórios)"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Dados incompletos (titulo, autor e quantidade_total são obrigatórios)"})
	}
	if *req.QuantidadeTotal < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "quantidade_total deve ser maior ou igual a zero"})
	}

	book, err := h.bookService.CreateBook(c.Request().Context(), service.CreateBookInput{
		Titulo:          req.Titulo,
		Autor:           req.Autor,
		ISBN:            req.ISBN,
		AnoPublicacao:   req.AnoPublicacao,
		Categoria:       req.Categoria,
		QuantidadeTotal: *req.QuantidadeTotal,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"mensagem": "Livro cadastrado com sucesso",
		"livro":    book,
	})
}

// List godoc
// @Summary Lista livros com filtros opcionais (rota pública)
// @Tags livros
// @Produce json
// @Param titulo query string false "Filtrar por título"
// @Param autor query string false "Filtrar por autor"
// @Param categoria query string false "Filtrar por categoria"
// @Param disponivel query bool false "Somente livros disponíveis"
// @Success 200 {object} map[string][]model.Book
// @Router /livros [get]
func (h *BookHandler) List(c echo.Context) error {
	filter := repository.BookFilter{
		Titulo:     c.QueryParam("titulo"),
		Autor:      c.QueryParam("autor"),
		Categoria:  c.QueryParam("categoria"),
		Disponivel: c.QueryParam("disponivel") == "true",
	}

	books, err := h.bookService.ListBooks(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	if books == nil {
		books = []model.Book{}
	}
	return c.JSON(http.StatusOK, echo.Map{"livros": books})
}

// Get godoc
// @Summary Obtém dados de um livro (rota pública)
// @Tags livros
// @Produce json
// @Param id path int true "ID do livro"
// @Success 200 {object} model.Book
// @Failure 404 {object} errors.ErrorResponse
// @Router /livros/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.bookService.GetBook(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, book)
}

// Update godoc
// @Summary Atualiza dados de um livro (apenas funcionários)
// @Tags livros
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do livro"
// @Param request body UpdateBookRequest true "Campos a atualizar"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /livros/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Dados não fornecidos"})
	}
	if req.Titulo == nil && req.Autor == nil && req.ISBN == nil &&
		req.AnoPublicacao == nil && req.Categoria == nil && req.QuantidadeTotal == nil {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"mensagem": "Dados não fornecidos"})
	}

	_, err = h.bookService.UpdateBook(c.Request().Context(), id, service.UpdateBookInput{
		Titulo:          req.Titulo,
		Autor:           req.Autor,
		ISBN:            req.ISBN,
		AnoPublicacao:   req.AnoPublicacao,
		Categoria:       req.Categoria,
		QuantidadeTotal: req.QuantidadeTotal,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"mensagem": "Livro atualizado com sucesso"})
}

// Delete godoc
// @Summary Deleta um livro sem reservas ativas (apenas funcionários)
// @Tags livros
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID do livro"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /livros/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookService.DeleteBook(c.Request().Context(), id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"mensagem": "Livro deletado com sucesso"})
}
