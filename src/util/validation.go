package util

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// MaxMoney is the largest value a NUMERIC(12,2) column holds.
var MaxMoney = decimal.RequireFromString("9999999999.99")

var (
	lowerRe   = regexp.MustCompile("[a-z]")
	upperRe   = regexp.MustCompile("[A-Z]")
	digitRe   = regexp.MustCompile("[0-9]")
	specialRe = regexp.MustCompile(`[^A-Za-z0-9]`)
	colorRe   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// ValidateColor accepts #RGB and #RRGGBB hex colors.
func ValidateColor(color string) bool {
	return colorRe.MatchString(color)
}

func ValidateCategoryName(name string) bool {
	name = strings.TrimSpace(name)
	return name != "" && len(name) <= 50
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ValidateMoney reports whether d is stored unchanged by a NUMERIC(12,2)
// column: at most two decimal places and no larger than MaxMoney.
func ValidateMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThanOrEqual(MaxMoney)
}
