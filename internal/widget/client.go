package widget

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/genetic-miniapp/backend/internal/model"
)

const dayLayout = "2006-01-02"

// Client HTTP-клиент API мини-приложения. Пустой baseURL означает
// относительные пути (API на том же origin).
type Client struct {
	baseURL string
	httpc   *http.Client
}

func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

// FetchDoctor загружает профиль врача
func (c *Client) FetchDoctor(ctx context.Context) (*model.Doctor, error) {
	var doctor model.Doctor
	if err := c.get(ctx, "/doctor", nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// FetchAwards загружает документы врача
func (c *Client) FetchAwards(ctx context.Context, offset, limit int) ([]model.Award, error) {
	var awards []model.Award
	if err := c.get(ctx, "/awards", pageQuery(offset, limit), &awards); err != nil {
		return nil, err
	}
	return awards, nil
}

// FetchReviews загружает скриншоты отзывов
func (c *Client) FetchReviews(ctx context.Context, offset, limit int) ([]model.ReviewAsset, error) {
	var reviews []model.ReviewAsset
	if err := c.get(ctx, "/reviews", pageQuery(offset, limit), &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// FetchAvailability загружает слоты за диапазон дней одним GET-запросом.
// Даты кодируются строго как YYYY-MM-DD. Результат на всякий случай
// пересортировывается по времени начала — порядок от сервера не гарантирован.
func (c *Client) FetchAvailability(ctx context.Context, fromDay, toDay time.Time, format model.Format) ([]model.AvailabilitySlot, error) {
	query := url.Values{}
	query.Set("from_date", fromDay.Format(dayLayout))
	query.Set("to_date", toDay.Format(dayLayout))
	query.Set("format", string(format))

	var slots []model.AvailabilitySlot
	if err := c.get(ctx, "/availability", query, &slots); err != nil {
		return nil, err
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartUTC.Before(slots[j].StartUTC)
	})
	return slots, nil
}

// CreateBooking отправляет запрос на запись. Конфликт (HTTP 409)
// возвращается как model.ErrSlotTaken.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (*model.BookingResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal booking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/booking", strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("build booking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send booking request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, model.ErrSlotTaken
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("booking failed: unexpected status %d", resp.StatusCode)
	}

	var result model.BookingResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func pageQuery(offset, limit int) url.Values {
	query := url.Values{}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	return query
}
