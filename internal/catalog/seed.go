package catalog

import "github.com/genetic-miniapp/backend/internal/model"

var defaultDoctor = model.Doctor{
	ID:              "doc-1",
	Name:            "Екатерина Иванова",
	Title:           "Врач-генетик",
	YearsExperience: 12,
	City:            "Москва",
	Formats:         []model.Format{model.FormatOnline, model.FormatOffline},
	Languages:       []string{"ru", "en"},
	PhotoURL:        "https://images.unsplash.com/photo-1550831107-1553da8c8464?q=80&w=800&auto=format&fit=crop",
	Bio:             "Клинический генетик, консультирование семейных рисков, интерпретация NGS-данных, пренатальная диагностика.",
}

var defaultAwards = []model.Award{
	{
		ID:          "aw1",
		Kind:        model.AwardKindCertificate,
		Title:       "Сертификат: Клиническая генетика",
		Issuer:      "РМАПО",
		Date:        "2023-05-12",
		ImageURL:    "https://images.unsplash.com/photo-1454165205744-3b78555e5572?q=80&w=1600&auto=format&fit=crop",
		Description: "Повышение квалификации по клинической генетике",
	},
	{
		ID:          "aw2",
		Kind:        model.AwardKindAward,
		Title:       "Премия за вклад в пренатальную диагностику",
		Issuer:      "Ассоциация генетиков",
		Date:        "2022-11-03",
		ImageURL:    "https://images.unsplash.com/photo-1523580846011-d3a5bc25702b?q=80&w=1600&auto=format&fit=crop",
		Description: "Награда за научно-практические достижения",
	},
}

var defaultReviews = []model.ReviewAsset{
	{ID: "rev1", ImageURL: "https://images.unsplash.com/photo-1526366003456-2c7c28bf1c66?w=1200&auto=format&fit=crop", Source: "instagram"},
	{ID: "rev2", ImageURL: "https://images.unsplash.com/photo-1517245386807-bb43f82c33c4?w=1200&auto=format&fit=crop", Source: "whatsapp"},
	{ID: "rev3", ImageURL: "https://images.unsplash.com/photo-1515165562835-c3b8c5a55dca?w=1200&auto=format&fit=crop"},
	{ID: "rev4", ImageURL: "https://images.unsplash.com/photo-1557426272-fc759fdf7a8d?w=1200&auto=format&fit=crop"},
}
