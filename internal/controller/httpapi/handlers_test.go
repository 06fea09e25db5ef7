package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/genetic-miniapp/backend/internal/catalog"
	"github.com/genetic-miniapp/backend/internal/model"
	"github.com/genetic-miniapp/backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore in-memory хранилище записей для тестов
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*model.Booking
}

func newMemStore() *memStore {
	return &memStore{bookings: make(map[int64]*model.Booking)}
}

func (m *memStore) Create(ctx context.Context, booking *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.bookings {
		if existing.AvailabilityID == booking.AvailabilityID {
			return model.ErrSlotTaken
		}
	}
	m.nextID++
	booking.ID = m.nextID
	booking.CreatedAt = time.Now().UTC()
	clone := *booking
	m.bookings[booking.ID] = &clone
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	booking, ok := m.bookings[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	clone := *booking
	return &clone, nil
}

func (m *memStore) ListBookedSlotIDs(ctx context.Context, from, to time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, booking := range m.bookings {
		if !booking.StartUTC.Before(from) && booking.StartUTC.Before(to) {
			ids = append(ids, booking.AvailabilityID)
		}
	}
	return ids, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	store := newMemStore()
	handlers := NewHandlers(
		catalog.New(),
		service.NewAvailabilityService(store, logger),
		service.NewBookingService(store, nil, logger),
		"", // dev mode
		logger,
	)

	srv := httptest.NewServer(NewRouter(handlers, nil))
	t.Cleanup(srv.Close)
	return srv
}

// nextMonday ближайший будущий понедельник (полночь UTC), чтобы слоты
// гарантированно были в будущем
func nextMonday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 7)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]bool
	resp := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body["ok"])
}

func TestGetDoctor(t *testing.T) {
	srv := newTestServer(t)

	var doctor model.Doctor
	resp := getJSON(t, srv.URL+"/doctor", &doctor)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "doc-1", doctor.ID)
	assert.NotEmpty(t, doctor.Name)
	assert.Contains(t, doctor.Formats, model.FormatOnline)
}

func TestGetAwardsFiltered(t *testing.T) {
	srv := newTestServer(t)

	var awards []model.Award
	resp := getJSON(t, srv.URL+"/awards?type=certificate", &awards)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, awards, 1)
	assert.Equal(t, model.AwardKindCertificate, awards[0].Kind)
}

func TestGetReviewsPaged(t *testing.T) {
	srv := newTestServer(t)

	var reviews []model.ReviewAsset
	resp := getJSON(t, srv.URL+"/reviews?offset=1&limit=2", &reviews)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, reviews, 2)
}

func TestGetAvailability(t *testing.T) {
	srv := newTestServer(t)
	monday := nextMonday()

	url := fmt.Sprintf("%s/availability?from_date=%s&to_date=%s&format=online",
		srv.URL, monday.Format("2006-01-02"), monday.Format("2006-01-02"))

	var slots []model.AvailabilitySlot
	resp := getJSON(t, url, &slots)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, slots, 3)

	for i, slot := range slots {
		assert.Equal(t, model.FormatOnline, slot.Format)
		assert.Equal(t, monday.Format("2006-01-02"), slot.Day())
		if i > 0 {
			assert.True(t, slots[i-1].StartUTC.Before(slot.StartUTC))
		}
	}
}

func TestGetAvailabilityValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []string{
		"/availability",
		"/availability?from_date=2025-03-10",
		"/availability?from_date=10.03.2025&to_date=2025-03-11",
		"/availability?from_date=2025-03-10&to_date=2025-03-11&format=zoom",
		"/availability?from_date=2025-03-11&to_date=2025-03-10",
	}
	for _, path := range cases {
		resp := getJSON(t, srv.URL+path, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestCreateBookingFlow(t *testing.T) {
	srv := newTestServer(t)
	monday := nextMonday()

	start := time.Date(monday.Year(), monday.Month(), monday.Day(), 10, 0, 0, 0, time.UTC).Add(-model.MSKOffset)
	slotID := model.SlotID(start, model.FormatOnline)

	payload := fmt.Sprintf(`{"availability_id":%q,"name":"Анна","contact":{"phone":"+79990001122"}}`, slotID)

	resp, err := http.Post(srv.URL+"/booking", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result model.BookingResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.StartUTC.Equal(start))
	assert.True(t, result.EndUTC.Equal(start.Add(time.Hour)))

	// Повторная запись на тот же слот — конфликт
	resp2, err := http.Post(srv.URL+"/booking", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)

	// Слот теперь помечен занятым в выдаче доступности
	url := fmt.Sprintf("%s/availability?from_date=%s&to_date=%s",
		srv.URL, monday.Format("2006-01-02"), monday.Format("2006-01-02"))
	var slots []model.AvailabilitySlot
	getJSON(t, url, &slots)

	var found bool
	for _, slot := range slots {
		if slot.ID == slotID {
			found = true
			assert.True(t, slot.Booked)
		}
	}
	assert.True(t, found)

	// Запись доступна по ID и как календарное приглашение
	var fetched model.BookingResult
	respGet := getJSON(t, fmt.Sprintf("%s/booking/%d", srv.URL, result.BookingID), &fetched)
	assert.Equal(t, http.StatusOK, respGet.StatusCode)
	assert.Equal(t, result.BookingID, fetched.BookingID)

	respICS, err := http.Get(fmt.Sprintf("%s/booking/%d/ics", srv.URL, result.BookingID))
	require.NoError(t, err)
	defer respICS.Body.Close()
	assert.Equal(t, http.StatusOK, respICS.StatusCode)
	assert.Contains(t, respICS.Header.Get("Content-Type"), "text/calendar")

	var buf bytes.Buffer
	_, err = buf.ReadFrom(respICS.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "DTSTART:"+start.Format("20060102T150405Z"))
}

func TestCreateBookingValidation(t *testing.T) {
	srv := newTestServer(t)

	cases := []string{
		`{}`,
		`{"availability_id":"garbage"}`,
		`{"availability_id":"2025-03-08-10-online"}`,
		`not json`,
	}
	for _, payload := range cases {
		resp, err := http.Post(srv.URL+"/booking", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, payload)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv.URL+"/booking/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAuthVerifyDevMode(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/auth/verify", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		OK      bool   `json:"ok"`
		DevMode bool   `json:"dev_mode"`
		Warning string `json:"warning"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.OK)
	assert.True(t, body.DevMode)
	assert.NotEmpty(t, body.Warning)
}

func TestAvailabilityImage(t *testing.T) {
	srv := newTestServer(t)
	monday := nextMonday()

	resp, err := http.Get(srv.URL + "/availability/image?from_date=" + monday.Format("2006-01-02"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
}
