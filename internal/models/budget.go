package models

// Budget is a monthly spending limit keyed uniquely by category.
// Writes use upsert semantics: insert on first sight of a category,
// overwrite its limit afterwards.
type Budget struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Category     string `gorm:"uniqueIndex;not null" json:"category"`
	MonthlyLimit int64  `gorm:"not null" json:"monthly_limit"`
}
