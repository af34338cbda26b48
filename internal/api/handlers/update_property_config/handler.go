package update_property_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/internal/service/catalog"
	"github.com/sebschult/FeWo-BookingService/internal/service/catalog/models"
)

const (
	msgInvalidPropertyID  = "ungueltige unterkunfts-id"
	msgInvalidRequestBody = "ungueltiger anfrageinhalt"
	msgInvalidInput       = "ungueltige konfigurationsdaten"
	msgNotFound           = "unterkunft nicht gefunden"
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

// Handle PUT /api/v1/properties/{propertyId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /properties/{id}/config - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req models.UpdatePropertyConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /properties/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.UpdatePropertyConfig(r.Context(), propertyID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPropertyNotFound):
			h.logger.Warn("PUT /properties/{id}/config - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /properties/{id}/config - Invalid input: property_id=%d: %v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /properties/{id}/config - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /properties/{id}/config - Config updated: property_id=%d", propertyID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
