package get_property_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/internal/service/catalog"
)

const (
	msgInvalidPropertyID = "ungueltige unterkunfts-id"
	msgNotFound          = "unterkunft nicht gefunden"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/config - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	config, err := h.service.GetPropertyConfig(r.Context(), propertyID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/config - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /properties/{id}/config - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/config - Config retrieved: property_id=%d", propertyID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
