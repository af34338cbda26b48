package approve_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
	"github.com/sebschult/FeWo-BookingService/internal/service/bookings"
	"github.com/sebschult/FeWo-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "ungueltige buchungs-id"
	msgNotFound         = "buchung nicht gefunden"
	msgCannotApprove    = "buchung ist bereits bestaetigt"
	msgRangeConfirmed   = "zeitraum bereits durch andere buchung belegt"
)

// ApproveResponse подтвержденная бронь и итог уведомления гостя
type ApproveResponse struct {
	Booking *models.BookingResponse     `json:"booking"`
	Notify  models.NotifyResultResponse `json:"notify"`
}

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

// Handle PATCH /api/v1/bookings/{bookingId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/approve - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, notify, err := h.service.Approve(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/approve - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotApprove):
			h.logger.Warn("PATCH /bookings/{id}/approve - Cannot approve: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgCannotApprove)

		case errors.Is(err, bookings.ErrRangeAlreadyConfirmed):
			h.logger.Warn("PATCH /bookings/{id}/approve - Range conflict: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgRangeConfirmed)

		default:
			h.logger.Error("PATCH /bookings/{id}/approve - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/approve - Booking approved: booking_id=%s, mail_ok=%t",
		bookingID, notify.OK)
	handlers.RespondJSON(w, http.StatusOK, ApproveResponse{Booking: booking, Notify: notify})
}
