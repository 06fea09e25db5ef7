package model

// Format определяет формат проведения консультации
type Format string

const (
	FormatAny     Format = "any"     // Любой формат (только для фильтрации)
	FormatOnline  Format = "online"  // Онлайн-консультация
	FormatOffline Format = "offline" // Очный приём
)

// ParseFormat разбирает значение фильтра формата, пустая строка — any
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatOnline:
		return FormatOnline, true
	case FormatOffline:
		return FormatOffline, true
	case FormatAny, Format(""):
		return FormatAny, true
	}
	return FormatAny, false
}

// Matches проверяет подходит ли формат слота под фильтр
func (f Format) Matches(filter Format) bool {
	return filter == FormatAny || f == filter
}
