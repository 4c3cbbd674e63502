package models

import "time"

// Interaktionstypen
const (
	InteractionSearch    = "search"
	InteractionUserInput = "user_input"
)

// Interaction speichert einen verarbeiteten Artikel samt Verdict und Zusammenfassung.
type Interaction struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
	UserID     *uint     `json:"user_id,omitempty" gorm:"index"`
	Type       string    `json:"type" gorm:"size:50"`
	Topic      *string   `json:"topic" gorm:"size:255"`
	Title      string    `json:"title" gorm:"size:512"`
	URL        string    `json:"url" gorm:"size:512"`
	RawText    string    `json:"raw_text,omitempty" gorm:"type:text"`
	Label      string    `json:"label" gorm:"size:20"`
	Confidence float64   `json:"confidence"`
	Summary    string    `json:"summary" gorm:"type:text"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName gibt explizit den Tabellennamen an.
func (Interaction) TableName() string {
	return "news_interactions"
}
