package exchange

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"bookinv/internal/httpx"
)

type HTTPHandler struct {
	converter Converter
}

func NewHTTPHandler(converter Converter) *HTTPHandler {
	return &HTTPHandler{converter: converter}
}

type convertRequest struct {
	Amount       float64 `json:"amount" validate:"gte=0"`
	FromCurrency string  `json:"from_currency" validate:"required,alpha,len=3"`
	ToCurrency   string  `json:"to_currency" validate:"required,alpha,len=3"`
}

// Convert handles POST /books/healthcheck/api/exchange-rate
func (h *HTTPHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}

	if details := httpx.ValidateStruct(req); details != nil {
		httpx.JSONError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid conversion request", details)
		return
	}

	from := strings.ToUpper(req.FromCurrency)
	to := strings.ToUpper(req.ToCurrency)

	quote, err := h.converter.Convert(r.Context(), req.Amount, from, to)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			httpx.JSONError(w, r, http.StatusInternalServerError, "EXTERNAL_SERVICE_ERROR", "Could not fetch exchange rate", nil)
			return
		}
		httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	httpx.JSONSuccess(w, r, quote, nil)
}
