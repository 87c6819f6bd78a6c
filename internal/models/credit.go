package models

// CreditConfig is the singleton internal credit line: a revolving balance
// independent of any cash account. It is created once at first
// initialization and mutated only through the ledger service, never
// handed out as a mutable reference.
//
// Used always satisfies 0 <= Used; Used <= Limit is enforced at the moment
// a credit-funded expense is recorded (raising the limit afterwards, or
// deleting rows, may legitimately change that picture).
type CreditConfig struct {
	ID    uint  `gorm:"primaryKey" json:"id"`
	Limit int64 `gorm:"column:limit_total;not null;default:0" json:"limit"`
	Used  int64 `gorm:"not null;default:0" json:"used"`
}

// Available returns the credit still spendable right now.
func (c *CreditConfig) Available() int64 {
	if c.Used >= c.Limit {
		return 0
	}
	return c.Limit - c.Used
}
