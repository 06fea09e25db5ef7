// Package httpapi реализует HTTP-интерфейс мини-приложения:
// профиль врача, документы, отзывы, доступные слоты и запись на консультацию.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/genetic-miniapp/backend/internal/catalog"
	"github.com/genetic-miniapp/backend/internal/ics"
	"github.com/genetic-miniapp/backend/internal/model"
	"github.com/genetic-miniapp/backend/internal/render"
	"github.com/genetic-miniapp/backend/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	dayLayout          = "2006-01-02"
	defaultReviewLimit = 12
)

type Handlers struct {
	catalog      *catalog.Catalog
	availability *service.AvailabilityService
	bookings     *service.BookingService
	botToken     string
	logger       *zap.Logger
}

func NewHandlers(
	cat *catalog.Catalog,
	availability *service.AvailabilityService,
	bookings *service.BookingService,
	botToken string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		catalog:      cat,
		availability: availability,
		bookings:     bookings,
		botToken:     botToken,
		logger:       logger,
	}
}

// HandleHealth GET /health
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// HandleDoctor GET /doctor
func (h *Handlers) HandleDoctor(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.Doctor())
}

// HandleAwards GET /awards?type=&offset=&limit=
func (h *Handlers) HandleAwards(w http.ResponseWriter, r *http.Request) {
	kind := model.AwardKind(r.URL.Query().Get("type"))
	offset, limit := pageParams(r, 0)
	h.writeJSON(w, http.StatusOK, h.catalog.Awards(kind, offset, limit))
}

// HandleReviews GET /reviews?offset=&limit=
func (h *Handlers) HandleReviews(w http.ResponseWriter, r *http.Request) {
	offset, limit := pageParams(r, defaultReviewLimit)
	h.writeJSON(w, http.StatusOK, h.catalog.Reviews(offset, limit))
}

// HandleAvailability GET /availability?from_date=&to_date=&format=
func (h *Handlers) HandleAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	fromDay, err := time.Parse(dayLayout, q.Get("from_date"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid from_date, expected YYYY-MM-DD")
		return
	}
	toDay, err := time.Parse(dayLayout, q.Get("to_date"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid to_date, expected YYYY-MM-DD")
		return
	}
	format, ok := model.ParseFormat(q.Get("format"))
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid format, expected any|online|offline")
		return
	}
	if toDay.Before(fromDay) {
		h.writeError(w, http.StatusBadRequest, "invalid date range")
		return
	}

	slots, err := h.availability.Slots(r.Context(), fromDay, toDay, format)
	if err != nil {
		h.logger.Error("Failed to generate availability", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Пустой диапазон отдаём как [], а не null
	if slots == nil {
		slots = []model.AvailabilitySlot{}
	}
	h.writeJSON(w, http.StatusOK, slots)
}

// HandleAvailabilityImage GET /availability/image?from_date=
// Отдаёт недельную сетку слотов картинкой для предпросмотра в чате.
func (h *Handlers) HandleAvailabilityImage(w http.ResponseWriter, r *http.Request) {
	fromDay := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := r.URL.Query().Get("from_date"); raw != "" {
		parsed, err := time.Parse(dayLayout, raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid from_date, expected YYYY-MM-DD")
			return
		}
		fromDay = parsed
	}

	slots, err := h.availability.Slots(r.Context(), fromDay, fromDay.AddDate(0, 0, 6), model.FormatAny)
	if err != nil {
		h.logger.Error("Failed to generate availability", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	png, err := render.WeekImage(fromDay, slots)
	if err != nil {
		h.logger.Error("Failed to render week image", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Error("Failed to write week image", zap.Error(err))
	}
}

// HandleCreateBooking POST /booking
func (h *Handlers) HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var req model.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.AvailabilityID == "" {
		h.writeError(w, http.StatusBadRequest, "availability_id is required")
		return
	}

	result, err := h.bookings.Create(r.Context(), req)
	switch {
	case errors.Is(err, model.ErrSlotTaken):
		h.writeError(w, http.StatusConflict, "slot already booked")
		return
	case errors.Is(err, model.ErrInvalidSlotID):
		h.writeError(w, http.StatusBadRequest, "invalid availability_id")
		return
	case errors.Is(err, model.ErrSlotInPast):
		h.writeError(w, http.StatusBadRequest, "slot is in the past")
		return
	case err != nil:
		h.logger.Error("Failed to create booking", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusCreated, result)
}

// HandleGetBooking GET /booking/{id}
func (h *Handlers) HandleGetBooking(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.bookingFromRequest(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, model.BookingResult{
		BookingID: booking.ID,
		StartUTC:  booking.StartUTC,
		EndUTC:    booking.EndUTC,
	})
}

// HandleBookingInvite GET /booking/{id}/ics
// Отдаёт календарное приглашение для скачивания.
func (h *Handlers) HandleBookingInvite(w http.ResponseWriter, r *http.Request) {
	booking, ok := h.bookingFromRequest(w, r)
	if !ok {
		return
	}

	doctor := h.catalog.Doctor()
	invite := ics.BuildInvite(ics.Event{
		Start:       booking.StartUTC,
		End:         booking.EndUTC,
		Summary:     fmt.Sprintf("Консультация: %s", doctor.Name),
		Description: booking.Note,
		Location:    inviteLocation(booking.Format, doctor.City),
	})

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="consultation.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(invite)); err != nil {
		h.logger.Error("Failed to write invite", zap.Error(err))
	}
}

func (h *Handlers) bookingFromRequest(w http.ResponseWriter, r *http.Request) (*model.Booking, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid booking id")
		return nil, false
	}

	booking, err := h.bookings.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "booking not found")
			return nil, false
		}
		h.logger.Error("Failed to get booking", zap.Error(err), zap.Int64("booking_id", id))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}

	return booking, true
}

func inviteLocation(format model.Format, city string) string {
	if format == model.FormatOnline {
		return "Онлайн"
	}
	return city
}

func pageParams(r *http.Request, defaultLimit int) (offset, limit int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			offset = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	return offset, limit
}
