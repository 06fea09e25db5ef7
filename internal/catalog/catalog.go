// Package catalog содержит контент профиля врача: сам профиль, документы
// и скриншоты отзывов. Контент read-only и задаётся при сборке, поэтому
// хранится прямо в коде, а не в БД.
package catalog

import "github.com/genetic-miniapp/backend/internal/model"

// Catalog отдаёт контент профиля с постраничной выборкой
type Catalog struct {
	doctor  model.Doctor
	awards  []model.Award
	reviews []model.ReviewAsset
}

// New создаёт каталог с дефолтным контентом
func New() *Catalog {
	return &Catalog{
		doctor:  defaultDoctor,
		awards:  defaultAwards,
		reviews: defaultReviews,
	}
}

// Doctor возвращает профиль врача
func (c *Catalog) Doctor() model.Doctor {
	return c.doctor
}

// Awards возвращает документы врача с фильтром по типу и пагинацией.
// kind == "" означает без фильтра.
func (c *Catalog) Awards(kind model.AwardKind, offset, limit int) []model.Award {
	items := c.awards
	if kind != "" {
		filtered := make([]model.Award, 0, len(items))
		for _, a := range items {
			if a.Kind == kind {
				filtered = append(filtered, a)
			}
		}
		items = filtered
	}
	return page(items, offset, limit)
}

// Reviews возвращает скриншоты отзывов с пагинацией
func (c *Catalog) Reviews(offset, limit int) []model.ReviewAsset {
	return page(c.reviews, offset, limit)
}

// ReviewsTotal возвращает общее количество отзывов
func (c *Catalog) ReviewsTotal() int {
	return len(c.reviews)
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	if limit <= 0 {
		limit = len(items) - offset
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
