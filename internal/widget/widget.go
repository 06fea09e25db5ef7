// Package widget реализует клиентскую часть экрана записи: загрузку
// контента и слотов, выбор слота с черновиком записи, отправку брони
// и формирование календарного приглашения.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genetic-miniapp/backend/internal/ics"
	"github.com/genetic-miniapp/backend/internal/model"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// State состояние выбора слота
type State string

const (
	StateIdle       State = "idle"       // слот не выбран
	StateSelected   State = "selected"   // слот выбран, черновик активен
	StateSubmitting State = "submitting" // запрос на запись в полёте
	StateConfirmed  State = "confirmed"  // запись подтверждена
	StateRejected   State = "rejected"   // сервер ответил конфликтом
)

// ErrSlotUnavailable попытка выбрать занятый слот
var ErrSlotUnavailable = errors.New("slot is not selectable")

// availabilityWindowDays размер окна доступности при первичной загрузке
const availabilityWindowDays = 14

// Copy тексты сообщений виджета
type Copy struct {
	SlotTaken     string
	BookingFailed string
	LoadFailed    string
}

func defaultCopy() Copy {
	return Copy{
		SlotTaken:     "Это время уже занято. Пожалуйста, выберите другое.",
		BookingFailed: "Не удалось записаться. Попробуйте ещё раз.",
		LoadFailed:    "Не удалось загрузить расписание. Попробуйте обновить.",
	}
}

// Config конфигурация виджета: тема, тексты, пути к ассетам.
// Варианты экрана отличаются только этим объектом, а не кодом.
type Config struct {
	RequireConsent bool
	Theme          map[string]string
	Copy           Copy
	AssetBase      string
}

// Profile контент, загружаемый при открытии экрана
type Profile struct {
	Doctor  *model.Doctor
	Awards  []model.Award
	Reviews []model.ReviewAsset
}

// Draft черновик записи. Существует не более одного: выбор нового слота
// заменяет предыдущий черновик.
type Draft struct {
	Slot    model.AvailabilitySlot
	Name    string
	Phone   string
	Email   string
	Note    string
	Consent bool
}

// Widget владеет всем состоянием экрана записи. Все методы безопасны для
// конкурентного вызова, хотя среда исполнения событийная и однопоточная.
type Widget struct {
	api    *Client
	host   Host
	cfg    Config
	logger *zap.Logger

	mu           sync.Mutex
	state        State
	profile      Profile
	theme        map[string]string
	slots        []model.AvailabilitySlot
	windowFrom   time.Time
	windowTo     time.Time
	windowFormat model.Format
	day          string
	format       model.Format
	draft        *Draft
	result       *model.BookingResult
	busy         bool
	closed       bool
	notice       string
}

func New(api *Client, host Host, cfg Config, logger *zap.Logger) *Widget {
	if cfg.Copy == (Copy{}) {
		cfg.Copy = defaultCopy()
	}
	return &Widget{
		api:    api,
		host:   host,
		cfg:    cfg,
		logger: logger,
		state:  StateIdle,
		format: model.FormatAny,
	}
}

// Init сообщает среде о готовности, применяет тему и загружает стартовые
// данные: профиль, документы и отзывы параллельно, затем окно доступности
// на 14 дней.
func (w *Widget) Init(ctx context.Context) error {
	w.host.Ready()
	w.host.Expand()

	w.mu.Lock()
	w.theme = mergeTheme(w.host.ThemeParams(), w.cfg.Theme)
	w.mu.Unlock()

	if err := w.LoadProfile(ctx); err != nil {
		return err
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	return w.LoadAvailability(ctx, today, today.AddDate(0, 0, availabilityWindowDays-1), model.FormatAny)
}

// LoadProfile загружает профиль, документы и отзывы. Порядок между тремя
// запросами не важен — они идут параллельно.
func (w *Widget) LoadProfile(ctx context.Context) error {
	var profile Profile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		doctor, err := w.api.FetchDoctor(gctx)
		profile.Doctor = doctor
		return err
	})
	g.Go(func() error {
		awards, err := w.api.FetchAwards(gctx, 0, 0)
		profile.Awards = awards
		return err
	})
	g.Go(func() error {
		reviews, err := w.api.FetchReviews(gctx, 0, 0)
		profile.Reviews = reviews
		return err
	})

	err := g.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	if err != nil {
		w.notice = w.cfg.Copy.LoadFailed
		return fmt.Errorf("load profile: %w", err)
	}

	w.profile = profile
	return nil
}

// LoadAvailability загружает окно доступности одним запросом.
// При ошибке список слотов очищается, ошибка возвращается для retry.
func (w *Widget) LoadAvailability(ctx context.Context, fromDay, toDay time.Time, format model.Format) error {
	slots, err := w.api.FetchAvailability(ctx, fromDay, toDay, format)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		// Экран закрыт — результат отбрасываем
		return nil
	}

	w.windowFrom, w.windowTo, w.windowFormat = fromDay, toDay, format
	if err != nil {
		w.slots = nil
		w.notice = w.cfg.Copy.LoadFailed
		return fmt.Errorf("load availability: %w", err)
	}

	w.slots = slots
	w.notice = ""
	return nil
}

// SetDay выбирает активный день (YYYY-MM-DD)
func (w *Widget) SetDay(day string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.day = day
}

// SetFormat выбирает фильтр формата
func (w *Widget) SetFormat(format model.Format) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.format = format
}

// VisibleSlots возвращает слоты активного дня с учётом фильтра формата,
// отсортированные по времени начала
func (w *Widget) VisibleSlots() []model.AvailabilitySlot {
	w.mu.Lock()
	defer w.mu.Unlock()

	visible := make([]model.AvailabilitySlot, 0, len(w.slots))
	for _, slot := range w.slots {
		if w.day != "" && slot.Day() != w.day {
			continue
		}
		if !slot.Format.Matches(w.format) {
			continue
		}
		visible = append(visible, slot)
	}
	return visible
}

// Select выбирает слот и создаёт черновик записи, заменяя предыдущий.
// Занятый слот выбрать нельзя.
func (w *Widget) Select(slotID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.busy {
		return nil
	}

	for _, slot := range w.slots {
		if slot.ID != slotID {
			continue
		}
		if slot.Booked {
			return ErrSlotUnavailable
		}
		w.draft = &Draft{Slot: slot}
		w.state = StateSelected
		w.notice = ""
		return nil
	}
	return fmt.Errorf("%w: unknown slot %q", ErrSlotUnavailable, slotID)
}

// SetContact заполняет контактные данные черновика
func (w *Widget) SetContact(name, phone, email, note string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	w.draft.Name, w.draft.Phone, w.draft.Email, w.draft.Note = name, phone, email, note
}

// SetConsent выставляет флаг согласия на обработку данных
func (w *Widget) SetConsent(consent bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return
	}
	w.draft.Consent = consent
}

// CanSubmit проверяет можно ли отправлять запись: слот выбран, согласие
// дано (если требуется), запрос не в полёте. Кнопка отправки в UI
// дизейблится ровно по этому предикату.
func (w *Widget) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canSubmitLocked()
}

func (w *Widget) canSubmitLocked() bool {
	if w.closed || w.busy || w.draft == nil {
		return false
	}
	if w.cfg.RequireConsent && !w.draft.Consent {
		return false
	}
	return true
}

// Submit отправляет запись. Без выбранного слота (или без согласия) это
// no-op: сетевой запрос не выполняется. Одновременно в полёте может быть
// не более одного запроса.
//
// Конфликт (занятый слот) возвращает выбор в исходное состояние, помечает
// слот занятым, перезапрашивает окно доступности и показывает сообщение.
// Любая другая ошибка оставляет слот выбранным для повторной попытки.
func (w *Widget) Submit(ctx context.Context) (*model.BookingResult, error) {
	w.mu.Lock()
	if !w.canSubmitLocked() {
		w.mu.Unlock()
		return nil, nil
	}
	draft := *w.draft
	w.busy = true
	w.state = StateSubmitting
	w.mu.Unlock()

	req := model.BookingRequest{
		AvailabilityID: draft.Slot.ID,
		Name:           draft.Name,
		Note:           draft.Note,
	}
	if draft.Phone != "" || draft.Email != "" {
		req.Contact = &model.Contact{Phone: draft.Phone, Email: draft.Email}
	}

	result, err := w.api.CreateBooking(ctx, req)

	w.mu.Lock()
	w.busy = false
	if w.closed {
		// Экран закрыт во время запроса — результат отбрасываем
		w.mu.Unlock()
		return nil, nil
	}

	switch {
	case errors.Is(err, model.ErrSlotTaken):
		// rejected: слот помечаем занятым и возвращаемся в idle
		w.markBookedLocked(draft.Slot.ID)
		w.draft = nil
		w.state = StateIdle
		w.notice = w.cfg.Copy.SlotTaken
		w.mu.Unlock()

		w.host.ShowAlert(w.cfg.Copy.SlotTaken)
		w.refreshWindow(ctx)
		return nil, model.ErrSlotTaken

	case err != nil:
		w.state = StateSelected
		w.notice = w.cfg.Copy.BookingFailed
		w.mu.Unlock()

		if w.logger != nil {
			w.logger.Warn("Booking submission failed", zap.Error(err))
		}
		w.host.ShowAlert(w.cfg.Copy.BookingFailed)
		return nil, err
	}

	w.state = StateConfirmed
	w.result = result
	w.draft = nil
	w.notice = ""
	w.mu.Unlock()
	return result, nil
}

// Invite формирует календарное приглашение для подтверждённой записи
func (w *Widget) Invite() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.result == nil {
		return "", fmt.Errorf("no confirmed booking")
	}

	summary := "Консультация"
	location := ""
	if w.profile.Doctor != nil {
		summary = "Консультация: " + w.profile.Doctor.Name
		location = w.profile.Doctor.City
	}

	return ics.BuildInvite(ics.Event{
		Start:    w.result.StartUTC,
		End:      w.result.EndUTC,
		Summary:  summary,
		Location: location,
	}), nil
}

// State возвращает текущее состояние выбора
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Notice возвращает текущее сообщение для пользователя
func (w *Widget) Notice() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.notice
}

// Profile возвращает загруженный контент экрана
func (w *Widget) Profile() Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

// Theme возвращает параметры темы для слоя отображения
func (w *Widget) Theme() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// Result возвращает результат подтверждённой записи (nil если её нет)
func (w *Widget) Result() *model.BookingResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Close помечает виджет закрытым: результаты запросов в полёте будут
// отброшены. Сами запросы не прерываются.
func (w *Widget) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.draft = nil
}

// refreshWindow перезапрашивает текущее окно доступности после конфликта,
// чтобы занятый слот не остался выбираемым
func (w *Widget) refreshWindow(ctx context.Context) {
	w.mu.Lock()
	from, to, format := w.windowFrom, w.windowTo, w.windowFormat
	w.mu.Unlock()

	if from.IsZero() {
		return
	}
	if err := w.LoadAvailability(ctx, from, to, format); err != nil && w.logger != nil {
		w.logger.Warn("Failed to refresh availability after conflict", zap.Error(err))
	}
}

func (w *Widget) markBookedLocked(slotID string) {
	for i := range w.slots {
		if w.slots[i].ID == slotID {
			w.slots[i].Booked = true
			return
		}
	}
}

func mergeTheme(base, overrides map[string]string) map[string]string {
	theme := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		theme[k] = v
	}
	for k, v := range overrides {
		theme[k] = v
	}
	return theme
}
