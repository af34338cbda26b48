package get_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	getQuote "github.com/sebschult/FeWo-BookingService/internal/usecase/get_quote"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

const (
	msgInvalidPropertyID = "ungueltige unterkunfts-id"
	msgInvalidDate       = "ungueltiges datumsformat, erwartet YYYY-MM-DD"
	msgInvalidRange      = "ungueltiger reisezeitraum"
	msgInvalidAdults     = "ungueltige anzahl erwachsener"
	msgPropertyNotFound  = "unterkunft nicht gefunden"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/quote?startDate=...&endDate=...&adults=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/quote - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	query := r.URL.Query()
	startDate, err := types.NewDateStringFromString(query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /properties/{id}/quote - Invalid startDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	endDate, err := types.NewDateStringFromString(query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /properties/{id}/quote - Invalid endDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	adults := 1
	if raw := query.Get("adults"); raw != "" {
		adults, err = strconv.Atoi(raw)
		if err != nil || adults < 0 {
			h.logger.Warn("GET /properties/{id}/quote - Invalid adults: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidAdults)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getQuote.Request{
		PropertyID: propertyID,
		StartDate:  startDate,
		EndDate:    endDate,
		Adults:     adults,
	})
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/quote - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, getQuote.ErrInvalidRange), errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/quote - Invalid request: property_id=%d: %v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /properties/{id}/quote - Failed to get quote: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/quote - Quote calculated: property_id=%d, nights=%d, total=%.2f",
		propertyID, result.Nights, result.GrandTotal)
	handlers.RespondJSON(w, http.StatusOK, result)
}
