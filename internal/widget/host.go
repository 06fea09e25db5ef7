package widget

// Host описывает возможности среды, в которой живёт виджет (Telegram
// WebApp SDK или его заглушка в тестах). Виджет не тянется к SDK напрямую —
// среда передаётся явно при создании.
type Host interface {
	// Ready сообщает среде что виджет готов к показу
	Ready()
	// Expand разворачивает viewport мини-приложения
	Expand()
	// ShowAlert показывает пользователю всплывающее сообщение
	ShowAlert(msg string)
	// ThemeParams возвращает параметры темы среды
	ThemeParams() map[string]string
}

// NoopHost заглушка для запуска вне Telegram
type NoopHost struct{}

func (NoopHost) Ready()                         {}
func (NoopHost) Expand()                        {}
func (NoopHost) ShowAlert(string)               {}
func (NoopHost) ThemeParams() map[string]string { return nil }
