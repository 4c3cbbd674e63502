package models

// User besitzt beliebig viele Interaktionen.
type User struct {
	ID    uint    `json:"id" gorm:"primaryKey"`
	Email *string `json:"email,omitempty" gorm:"size:255;uniqueIndex"`
	Name  string  `json:"name" gorm:"size:255"`

	Interactions []Interaction `json:"-" gorm:"foreignKey:UserID"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (User) TableName() string {
	return "users"
}
