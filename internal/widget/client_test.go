package widget

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingConflictMapping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", nil) // хвостовой слэш нормализуется
	_, err := client.CreateBooking(context.Background(), model.BookingRequest{AvailabilityID: "x"})
	assert.ErrorIs(t, err, model.ErrSlotTaken)
}

func TestFetchAvailabilityResortsSlots(t *testing.T) {
	first := time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	second := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Сервер отдаёт слоты в обратном порядке
		json.NewEncoder(w).Encode([]model.AvailabilitySlot{
			{ID: "b", StartUTC: second, EndUTC: second.Add(time.Hour), Format: model.FormatOffline},
			{ID: "a", StartUTC: first, EndUTC: first.Add(time.Hour), Format: model.FormatOnline},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	slots, err := client.FetchAvailability(context.Background(), first, first, model.FormatAny)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].ID)
	assert.Equal(t, "b", slots[1].ID)
}

func TestFetchDoctorError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.FetchDoctor(context.Background())
	assert.Error(t, err)
}
