package release_holds

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

const (
	msgInvalidPropertyID  = "ungueltige unterkunfts-id"
	msgInvalidRequestBody = "ungueltiger anfrageinhalt"
	msgInvalidDate        = "ungueltiges datumsformat, erwartet YYYY-MM-DD"
	msgInvalidRange       = "ungueltiger zeitraum"
)

// ReleaseHoldsRequest окно [fromDate, toDate), в котором снимаются все холды
type ReleaseHoldsRequest struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

type Handler struct {
	holdRepo HoldRepository
	logger   Logger
}

func NewHandler(holdRepo HoldRepository, logger Logger) *Handler {
	return &Handler{
		holdRepo: holdRepo,
		logger:   logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/holds/release
// Обслуживающая операция оператора; идемпотентна.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/holds/release - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req ReleaseHoldsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/holds/release - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fromDate, err := types.NewDateStringFromString(req.FromDate)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/holds/release - Invalid fromDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	toDate, err := types.NewDateStringFromString(req.ToDate)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/holds/release - Invalid toDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if !fromDate.Before(toDate) {
		h.logger.Warn("POST /properties/{id}/holds/release - Invalid range %s..%s", fromDate, toDate)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	if err := h.holdRepo.ReleaseRange(r.Context(), propertyID, fromDate, toDate); err != nil {
		h.logger.Error("POST /properties/{id}/holds/release - Failed: property_id=%d, error=%v", propertyID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /properties/{id}/holds/release - Holds released: property_id=%d, window=%s..%s",
		propertyID, fromDate, toDate)
	handlers.RespondNoContent(w)
}
