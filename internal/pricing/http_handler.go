package pricing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bookinv/internal/book"
	"bookinv/internal/exchange"
	"bookinv/internal/httpx"
)

type HTTPHandler struct {
	svc *Service
}

func NewHTTPHandler(svc *Service) *HTTPHandler {
	return &HTTPHandler{svc: svc}
}

type calculatePriceRequest struct {
	ToCurrency    string   `json:"to_currency" validate:"required,alpha,len=3"`
	MarginPercent *float64 `json:"margin_percentage" validate:"omitempty,gte=0"`
}

// CalculatePrice handles POST /books/books/{id}/calculate-price
// @Summary Calculate localized selling price
// @Description Converts the book's cost to the target currency, applies the margin and persists the selling price
// @Tags pricing
// @Accept json
// @Produce json
// @Param id path int true "Book ID"
// @Param request body calculatePriceRequest true "Target currency and optional margin"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 422 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books/books/{id}/calculate-price [post]
func (h *HTTPHandler) CalculatePrice(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid book id", nil)
		return
	}

	var req calculatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid pricing request", details)
		return
	}

	margin := DefaultMarginPercent
	if req.MarginPercent != nil {
		margin = *req.MarginPercent
	}

	result, err := h.svc.CalculatePrice(r.Context(), id, strings.ToUpper(req.ToCurrency), margin)
	if err != nil {
		switch {
		case errors.Is(err, book.ErrNotFound):
			httpx.JSONError(w, r, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		case errors.Is(err, exchange.ErrUnavailable):
			httpx.JSONError(w, r, http.StatusInternalServerError, "EXTERNAL_SERVICE_ERROR", "Could not fetch exchange rate", nil)
		default:
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, result, nil)
}
