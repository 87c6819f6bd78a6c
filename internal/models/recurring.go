package models

// RecurringCharge is a declarative monthly charge surfaced to the user.
// No scheduler applies it to the ledger automatically.
type RecurringCharge struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"not null" json:"name"`
	Amount     int64  `gorm:"not null" json:"amount"`
	DayOfMonth int    `gorm:"not null;check:day_of_month BETWEEN 1 AND 31" json:"day_of_month"`
	Category   string `json:"category"`
	Active     bool   `gorm:"default:true" json:"active"`
}
