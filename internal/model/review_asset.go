package model

// ReviewAsset представляет скриншот отзыва пациента
type ReviewAsset struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	Source   string `json:"source,omitempty"`
	Date     string `json:"date,omitempty"`
	Caption  string `json:"caption,omitempty"`
}
