package get_property_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/internal/service/bookings"
	"github.com/sebschult/FeWo-BookingService/internal/service/bookings/models"
	"github.com/sebschult/FeWo-BookingService/pkg/ptr"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

const (
	msgInvalidPropertyID = "ungueltige unterkunfts-id"
	msgInvalidDate       = "ungueltiges datumsformat, erwartet YYYY-MM-DD"
	msgInvalidStatus     = "ungueltiger buchungsstatus"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/bookings?fromDate=...&toDate=...&status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/bookings - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	req := &models.ListBookingsRequest{PropertyID: propertyID}

	query := r.URL.Query()
	if raw := query.Get("fromDate"); raw != "" {
		fromDate, err := types.NewDateStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /properties/{id}/bookings - Invalid fromDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.FromDate = ptr.Ptr(fromDate)
	}
	if raw := query.Get("toDate"); raw != "" {
		toDate, err := types.NewDateStringFromString(raw)
		if err != nil {
			h.logger.Warn("GET /properties/{id}/bookings - Invalid toDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.ToDate = ptr.Ptr(toDate)
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = ptr.Ptr(raw)
	}

	result, err := h.service.ListByProperty(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/bookings - Invalid status filter: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /properties/{id}/bookings - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/bookings - %d bookings retrieved: property_id=%d",
		len(result.Bookings), propertyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
