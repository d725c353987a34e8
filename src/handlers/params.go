package handlers

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"spendlog-server/src/models"
	"spendlog-server/src/util"

	"github.com/shopspring/decimal"
)

// parseExpenseFilter reads the listing query parameters. Empty values are
// treated as absent.
func parseExpenseFilter(q url.Values) (models.ExpenseFilter, error) {
	var f models.ExpenseFilter

	if v := q.Get("from"); v != "" {
		d, err := util.ParseDate(v)
		if err != nil {
			return f, errors.New("Invalid from date format. Expected YYYY-MM-DD")
		}
		f.FromDate = &d
	}
	if v := q.Get("to"); v != "" {
		d, err := util.ParseDate(v)
		if err != nil {
			return f, errors.New("Invalid to date format. Expected YYYY-MM-DD")
		}
		f.ToDate = &d
	}
	if f.FromDate != nil && f.ToDate != nil && f.FromDate.After(*f.ToDate) {
		return f, errors.New("'from' cannot be after 'to'")
	}

	if v := q.Get("minAmount"); v != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return f, errors.New("Invalid minAmount format. Expected numeric value")
		}
		f.MinAmount = &d
	}
	if v := q.Get("maxAmount"); v != "" {
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return f, errors.New("Invalid maxAmount format. Expected numeric value")
		}
		f.MaxAmount = &d
	}
	if f.MinAmount != nil && f.MaxAmount != nil && f.MinAmount.GreaterThan(*f.MaxAmount) {
		return f, errors.New("minAmount cannot be greater than maxAmount")
	}

	if v := q.Get("category"); v != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return f, errors.New("Invalid categoryId format. Expected integer value")
		}
		f.CategoryID = &id
	}
	if v := q.Get("search"); v != "" {
		f.Search = &v
	}
	return f, nil
}

// parsePage reads page and pageSize. A missing pageSize means no paging.
func parsePage(q url.Values) (page, pageSize int, err error) {
	page = 1
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, errors.New("Invalid page. Expected positive integer")
		}
	}
	if v := q.Get("pageSize"); v != "" {
		if pageSize, err = strconv.Atoi(v); err != nil || pageSize < 1 {
			return 0, 0, errors.New("Invalid pageSize. Expected positive integer")
		}
	}
	return page, pageSize, nil
}
