package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/internal/service/availability"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

const (
	msgInvalidPropertyID = "ungueltige unterkunfts-id"
	msgInvalidDate       = "ungueltiges datumsformat, erwartet YYYY-MM-DD"
	msgInvalidRange      = "ungueltiger zeitraum"
)

// AvailabilityResponse календарь занятости для витрины
type AvailabilityResponse struct {
	PropertyID        int64    `json:"propertyId"`
	FromDate          string   `json:"fromDate"`
	ToDate            string   `json:"toDate"`
	UnavailableNights []string `json:"unavailableNights"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/availability?fromDate=...&toDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	query := r.URL.Query()
	fromDate, err := types.NewDateStringFromString(query.Get("fromDate"))
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid fromDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	toDate, err := types.NewDateStringFromString(query.Get("toDate"))
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid toDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	nights, err := h.service.ListUnavailableNights(r.Context(), propertyID, fromDate, toDate)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRange):
			h.logger.Warn("GET /properties/{id}/availability - Invalid range: property_id=%d: %v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /properties/{id}/availability - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := AvailabilityResponse{
		PropertyID:        propertyID,
		FromDate:          fromDate.String(),
		ToDate:            toDate.String(),
		UnavailableNights: make([]string, 0, len(nights)),
	}
	for _, night := range nights {
		response.UnavailableNights = append(response.UnavailableNights, night.String())
	}

	h.logger.Info("GET /properties/{id}/availability - %d unavailable nights: property_id=%d",
		len(nights), propertyID)
	handlers.RespondJSON(w, http.StatusOK, response)
}
