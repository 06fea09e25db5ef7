package model

// Doctor представляет профиль врача для мини-приложения
type Doctor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	YearsExperience int      `json:"years_experience"`
	City            string   `json:"city"`
	Formats         []Format `json:"formats"`
	Languages       []string `json:"languages"`
	PhotoURL        string   `json:"photo_url"`
	Bio             string   `json:"bio"`
}
