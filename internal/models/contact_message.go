package models

import "time"

// ContactMessage is a submission from the public contact form.
type ContactMessage struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
	// Language the visitor was browsing in ("ar" or "en"), used to pick
	// the reply template.
	Language string `json:"language" gorm:"default:'en'"`
	ClientIP string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
