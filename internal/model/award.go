package model

// AwardKind тип документа: диплом, сертификат, награда или публикация
type AwardKind string

const (
	AwardKindDiploma     AwardKind = "diploma"
	AwardKindCertificate AwardKind = "certificate"
	AwardKindAward       AwardKind = "award"
	AwardKindPublication AwardKind = "publication"
)

// Award представляет документ об образовании или достижение врача
type Award struct {
	ID          string    `json:"id"`
	Kind        AwardKind `json:"type"`
	Title       string    `json:"title"`
	Issuer      string    `json:"issuer"`
	Date        string    `json:"date"` // YYYY-MM-DD
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description,omitempty"`
}
