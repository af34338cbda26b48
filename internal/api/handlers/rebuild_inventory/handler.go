package rebuild_inventory

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	rebuildInventory "github.com/sebschult/FeWo-BookingService/internal/usecase/rebuild_inventory"
	"github.com/sebschult/FeWo-BookingService/pkg/types"
)

const (
	msgInvalidPropertyID  = "ungueltige unterkunfts-id"
	msgInvalidRequestBody = "ungueltiger anfrageinhalt"
	msgInvalidDate        = "ungueltiges datumsformat, erwartet YYYY-MM-DD"
	msgInvalidRange       = "ungueltiger zeitraum"
)

// RebuildInventoryRequest окно [fromDate, toDate) для пересборки
type RebuildInventoryRequest struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

type Handler struct {
	useCase RebuildInventoryUseCase
	logger  Logger
}

func NewHandler(useCase RebuildInventoryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/inventory/rebuild
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/inventory/rebuild - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	var req RebuildInventoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/inventory/rebuild - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	fromDate, err := types.NewDateStringFromString(req.FromDate)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/inventory/rebuild - Invalid fromDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	toDate, err := types.NewDateStringFromString(req.ToDate)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/inventory/rebuild - Invalid toDate: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rebuildInventory.Request{
		PropertyID: propertyID,
		FromDate:   fromDate,
		ToDate:     toDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, rebuildInventory.ErrInvalidRange), errors.Is(err, rebuildInventory.ErrInvalidInput):
			h.logger.Warn("POST /properties/{id}/inventory/rebuild - Invalid request: property_id=%d: %v", propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("POST /properties/{id}/inventory/rebuild - Failed: property_id=%d, error=%v", propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/inventory/rebuild - Rebuilt %d nights from %d bookings: property_id=%d",
		result.NightsBlocked, result.Bookings, propertyID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
