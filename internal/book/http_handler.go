package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"bookinv/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type createBookRequest struct {
	Title             string  `json:"title" validate:"required"`
	Author            string  `json:"author" validate:"required"`
	ISBN              string  `json:"isbn" validate:"required,isbn"`
	CostUSD           float64 `json:"cost_usd" validate:"gte=0"`
	SellingPriceLocal float64 `json:"selling_price_local" validate:"gte=0"`
	StockQuantity     int     `json:"stock_quantity" validate:"gte=0"`
	Category          string  `json:"category" validate:"required"`
	SupplierCountry   string  `json:"supplier_country" validate:"required"`
}

type updateBookRequest struct {
	Title             *string  `json:"title"`
	Author            *string  `json:"author"`
	ISBN              *string  `json:"isbn" validate:"omitempty,isbn"`
	CostUSD           *float64 `json:"cost_usd" validate:"omitempty,gte=0"`
	SellingPriceLocal *float64 `json:"selling_price_local" validate:"omitempty,gte=0"`
	StockQuantity     *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	Category          *string  `json:"category"`
	SupplierCountry   *string  `json:"supplier_country"`
}

func (req updateBookRequest) toPatch() Patch {
	return Patch{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		CostUSD:           req.CostUSD,
		SellingPriceLocal: req.SellingPriceLocal,
		StockQuantity:     req.StockQuantity,
		Category:          req.Category,
		SupplierCountry:   req.SupplierCountry,
	}
}

// Create handles POST /books/
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Param request body createBookRequest true "Book fields"
// @Success 201 {object} httpx.SuccessResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/ [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid book fields", details)
		return
	}

	created, err := h.svc.Create(r.Context(), Book{
		Title:             req.Title,
		Author:            req.Author,
		ISBN:              req.ISBN,
		CostUSD:           req.CostUSD,
		SellingPriceLocal: req.SellingPriceLocal,
		StockQuantity:     req.StockQuantity,
		Category:          req.Category,
		SupplierCountry:   req.SupplierCountry,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccessCreated(w, r, created)
}

// List handles GET /books/?skip=&limit=
// @Summary List books
// @Tags books
// @Produce json
// @Param skip query int false "Zero-based offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {object} httpx.SuccessResponse
// @Router /books/ [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	skip, _ := strconv.Atoi(query.Get("skip"))
	limit, _ := strconv.Atoi(query.Get("limit"))

	books, err := h.svc.List(r.Context(), Query{Offset: skip, Limit: limit})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, books, map[string]any{
		"skip":  skip,
		"count": len(books),
	})
}

// GetByID handles GET /books/{id}
// @Summary Get a book by id
// @Tags books
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, b, nil)
}

// ListByCategory handles GET /books/category/{category}
// @Summary List books in a category
// @Tags books
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/category/{category} [get]
func (h *HTTPHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if category == "" {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Category is required", nil)
		return
	}

	books, err := h.svc.ListByCategory(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, books, nil)
}

// ListBelowStock handles GET /books/stock/below/{threshold}
// @Summary List books below a stock threshold
// @Tags books
// @Produce json
// @Param threshold path int true "Stock threshold (exclusive)"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/stock/below/{threshold} [get]
func (h *HTTPHandler) ListBelowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := strconv.Atoi(r.PathValue("threshold"))
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid stock threshold", nil)
		return
	}

	books, err := h.svc.ListBelowStock(r.Context(), threshold)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, books, nil)
}

// Update handles PUT /books/{id}
// @Summary Partially update a book
// @Description Only the fields present in the body are modified
// @Tags books
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body updateBookRequest true "Fields to update"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid book fields", details)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, req.toPatch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, updated, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Delete a book
// @Tags books
// @Param id path int true "Book ID"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.JSONSuccessNoContent(w)
}

func (h *HTTPHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrDuplicateISBN):
		httpx.JSONError(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
	default:
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}
