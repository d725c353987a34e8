package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Budget       decimal.Decimal
	CreatedAt    time.Time
}
