package models

// SavingsPlan is a named savings target fed by explicit deposits.
// CurrentAmount equals the sum of its deposit transactions; it is
// maintained inside the same atomic unit of work that records each
// deposit. Completion is derived, never stored.
//
// Name is unique: deposit reconciliation attributes companion expense
// rows back to plans through the name carried in their description.
type SavingsPlan struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"uniqueIndex;not null" json:"name"`
	TargetAmount  int64  `gorm:"not null;check:target_amount > 0" json:"target_amount"`
	CurrentAmount int64  `gorm:"not null;default:0" json:"current_amount"`
	DueDate       string `gorm:"size:10" json:"due_date,omitempty"`
	Color         string `json:"color,omitempty"`
}

// Done reports whether the plan has reached its target.
func (p *SavingsPlan) Done() bool {
	return p.CurrentAmount >= p.TargetAmount
}
