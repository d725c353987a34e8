package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single expense. Date carries no time-of-day component.
type Transaction struct {
	ID         int64
	UserID     int64
	CategoryID int64
	Amount     decimal.Decimal
	Date       time.Time
	Notes      string
}

func (t Transaction) OwnerID() int64 { return t.UserID }
