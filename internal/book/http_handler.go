package book

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"bookcatalog/internal/httpx"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /books", h.List)
	mux.HandleFunc("GET /books/search", h.Search)
	mux.HandleFunc("GET /books/{id}", h.Get)
	mux.HandleFunc("POST /books", h.Create)
	mux.HandleFunc("PUT /books/{id}", h.Update)
	mux.HandleFunc("DELETE /books/{id}", h.Delete)
}

type bookRequest struct {
	Title  string `json:"title" validate:"required,min=1,max=50"`
	Author string `json:"author" validate:"required,min=1,max=50"`
	Year   *int   `json:"year" validate:"omitempty,gte=1,notfuture"`
}

type pageParams struct {
	Cursor *int64 `query:"cursor" validate:"omitempty,gte=0"`
	Limit  int    `query:"limit" validate:"gte=1"`
}

type searchParams struct {
	Title  *string `query:"title"`
	Author *string `query:"author"`
	Year   *int    `query:"year" validate:"omitempty,gte=1,notfuture"`
}

// List handles GET /books
// @Summary List books
// @Tags books
// @Produce json
// @Param cursor query int false "Id of the last book already seen"
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	page, details := parsePage(r.URL.Query())
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination parameters", details)
		return
	}

	books, err := h.service.List(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePage(w, r, page, books)
}

// Search handles GET /books/search
// @Summary Search books by title, author or year
// @Tags books
// @Produce json
// @Param title query string false "Title fragment or words"
// @Param author query string false "Author fragment or words"
// @Param year query int false "Exact publication year"
// @Param cursor query int false "Id of the last book already seen"
// @Param limit query int false "Page size" default(12)
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books/search [get]
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, details := parsePage(query)
	filter, filterDetails := parseFilter(query)
	details = append(details, filterDetails...)
	if len(details) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid search parameters", details)
		return
	}

	books, err := h.service.Search(r.Context(), filter, page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePage(w, r, page, books)
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /books
// @Summary Add a new book
// @Tags books
// @Accept json
// @Produce json
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBook(w, r)
	if !ok {
		return
	}

	b, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, b)
}

// Update handles PUT /books/{id}
// @Summary Update book details
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := decodeBook(w, r)
	if !ok {
		return
	}

	b, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, map[string]bool{"deleted": true}, nil)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
	case errors.Is(err, ErrConstraint):
		httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", "Book violates a store constraint", nil)
	case errors.Is(err, ErrEmptyFilter):
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Enter at least one search parameter", nil)
	default:
		log.Printf("book request failed: request_id=%s method=%s path=%s error=%v", httpx.RequestIDFrom(r), r.Method, r.URL.Path, err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

func writePage(w http.ResponseWriter, r *http.Request, page Page, books []Book) {
	if books == nil {
		books = []Book{}
	}
	meta := map[string]any{
		"limit":       page.limit(),
		"next_cursor": nil,
	}
	if next := page.Next(books); next != nil {
		meta["next_cursor"] = *next
	}
	httpx.JSONSuccess(w, r, books, meta)
}

func decodeBook(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req bookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		if httpx.IsBodyTooLarge(err) {
			httpx.JSONPayloadTooLarge(w, r)
			return Input{}, false
		}
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return Input{}, false
	}
	if errs := httpx.ValidateStruct(req); len(errs) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid book", httpx.Details(errs))
		return Input{}, false
	}
	return Input{Title: req.Title, Author: req.Author, Year: req.Year}, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Book id must be an integer", nil)
		return 0, false
	}
	return id, true
}

func parsePage(q url.Values) (Page, []httpx.ErrorDetail) {
	var details []httpx.ErrorDetail
	params := pageParams{Limit: DefaultLimit}

	if v := q.Get("cursor"); v != "" {
		cursor, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			details = append(details, notInteger("cursor"))
		} else {
			params.Cursor = &cursor
		}
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			details = append(details, notInteger("limit"))
		} else {
			params.Limit = limit
		}
	}
	if len(details) > 0 {
		return Page{}, details
	}
	if errs := httpx.ValidateStruct(params); len(errs) > 0 {
		return Page{}, httpx.Details(errs)
	}
	return Page{Cursor: params.Cursor, Limit: params.Limit}, nil
}

// parseFilter reads title, author and year. Text values are trimmed and an
// empty value counts as absent; at least one field must remain.
func parseFilter(q url.Values) (Filter, []httpx.ErrorDetail) {
	var params searchParams
	for key, dst := range map[string]**string{"title": &params.Title, "author": &params.Author} {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			*dst = &v
		}
	}
	if v := strings.TrimSpace(q.Get("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, []httpx.ErrorDetail{notInteger("year")}
		}
		params.Year = &year
	}

	if errs := httpx.ValidateStruct(params); len(errs) > 0 {
		return Filter{}, httpx.Details(errs)
	}

	f := Filter{Title: params.Title, Author: params.Author, Year: params.Year}
	if f.IsEmpty() {
		return Filter{}, []httpx.ErrorDetail{{Field: "query", Message: "Enter at least one search parameter"}}
	}
	return f, nil
}

func notInteger(field string) httpx.ErrorDetail {
	return httpx.ErrorDetail{Field: field, Message: fmt.Sprintf("%s must be an integer", field)}
}
