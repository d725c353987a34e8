// Package storetest provides an in-memory store for exercising services
// and handlers without Postgres.
package storetest

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"spendlog-server/src/models"
	"spendlog-server/src/util"

	"github.com/shopspring/decimal"
)

// Store is an in-memory stand-in for *db.Store with the same scoping
// rules: list and delete are owner-scoped, GetXByID is not.
type Store struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]models.User
	categories map[int64]models.Category
	txns       map[int64]models.Transaction
	budgets    map[int64]models.Budget

	// FailLists, when set, is returned by every list method.
	FailLists error
	// Today is the date given to transactions created without one.
	Today time.Time
}

func New() *Store {
	return &Store{
		users:      map[int64]models.User{},
		categories: map[int64]models.Category{},
		txns:       map[int64]models.Transaction{},
		budgets:    map[int64]models.Budget{},
		Today:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
}

// checkMoney fails where Postgres would round or overflow a NUMERIC(12,2)
// value, so callers that skip validation show up in tests.
func checkMoney(d decimal.Decimal) error {
	if !util.ValidateMoney(d) {
		return fmt.Errorf("value %s does not fit NUMERIC(12,2)", d)
	}
	return nil
}

func (m *Store) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Store) CreateUser(_ context.Context, username, hash string, budget decimal.Decimal) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkMoney(budget); err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if u.Username == username {
			return nil, models.ErrDuplicate
		}
	}
	u := models.User{ID: m.id(), Username: username, PasswordHash: hash, Budget: budget, CreatedAt: m.Today}
	m.users[u.ID] = u
	return &u, nil
}

func (m *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *Store) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &u, nil
}

func (m *Store) UpdateUserBudget(_ context.Context, userID int64, budget decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkMoney(budget); err != nil {
		return err
	}
	u, ok := m.users[userID]
	if !ok {
		return models.ErrNotFound
	}
	u.Budget = budget
	m.users[userID] = u
	return nil
}

func (m *Store) CreateCategory(_ context.Context, c *models.Category) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *c
	out.ID = m.id()
	m.categories[out.ID] = out
	return &out, nil
}

func (m *Store) GetCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (m *Store) GetCategoriesByUser(_ context.Context, userID int64) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLists != nil {
		return nil, m.FailLists
	}
	out := []models.Category{}
	for id := int64(1); id <= m.nextID; id++ {
		if c, ok := m.categories[id]; ok && c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Store) UpdateCategory(_ context.Context, c *models.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.categories[c.ID]
	if !ok || cur.UserID != c.UserID {
		return models.ErrNotFound
	}
	m.categories[c.ID] = *c
	return nil
}

func (m *Store) DeleteCategory(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.categories[id]
	if !ok || cur.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *Store) CreateTransaction(_ context.Context, t *models.Transaction) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkMoney(t.Amount); err != nil {
		return nil, err
	}
	out := *t
	out.ID = m.id()
	if out.Date.IsZero() {
		out.Date = m.Today
	}
	m.txns[out.ID] = out
	return &out, nil
}

func (m *Store) GetTransactionByID(_ context.Context, id int64) (*models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.txns[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &t, nil
}

// GetTransactionsByUser returns rows in insertion order so tests exercise
// the engine's own sorting.
func (m *Store) GetTransactionsByUser(_ context.Context, userID int64) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLists != nil {
		return nil, m.FailLists
	}
	out := []models.Transaction{}
	for id := int64(1); id <= m.nextID; id++ {
		if t, ok := m.txns[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *Store) UpdateTransaction(_ context.Context, t *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkMoney(t.Amount); err != nil {
		return err
	}
	cur, ok := m.txns[t.ID]
	if !ok || cur.UserID != t.UserID {
		return models.ErrNotFound
	}
	cur.CategoryID = t.CategoryID
	cur.Amount = t.Amount
	cur.Notes = t.Notes
	m.txns[t.ID] = cur
	return nil
}

func (m *Store) DeleteTransaction(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.txns[id]
	if !ok || cur.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.txns, id)
	return nil
}

func (m *Store) CreateBudget(_ context.Context, b *models.Budget) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkMoney(b.LimitAmount); err != nil {
		return nil, err
	}
	out := *b
	out.ID = m.id()
	m.budgets[out.ID] = out
	return &out, nil
}

func (m *Store) GetBudgetByID(_ context.Context, id int64) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.budgets[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &b, nil
}

func (m *Store) GetBudgetsByUser(_ context.Context, userID int64) ([]models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailLists != nil {
		return nil, m.FailLists
	}
	out := []models.Budget{}
	for id := int64(1); id <= m.nextID; id++ {
		if b, ok := m.budgets[id]; ok && b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *Store) UpdateBudget(_ context.Context, b *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkMoney(b.LimitAmount); err != nil {
		return err
	}
	cur, ok := m.budgets[b.ID]
	if !ok || cur.UserID != b.UserID {
		return models.ErrNotFound
	}
	m.budgets[b.ID] = *b
	return nil
}

func (m *Store) DeleteBudget(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.budgets[id]
	if !ok || cur.UserID != userID {
		return models.ErrNotFound
	}
	delete(m.budgets, id)
	return nil
}

// State is a point-in-time copy of every table.
type State struct {
	users      map[int64]models.User
	categories map[int64]models.Category
	txns       map[int64]models.Transaction
	budgets    map[int64]models.Budget
}

// Snapshot copies every table so tests can assert nothing changed.
func (m *Store) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		users:      maps.Clone(m.users),
		categories: maps.Clone(m.categories),
		txns:       maps.Clone(m.txns),
		budgets:    maps.Clone(m.budgets),
	}
}

// PlainHasher stores passwords as "plain:<password>". It stands in for
// bcrypt where hashing cost would only slow tests down.
type PlainHasher struct{}

func (PlainHasher) Hash(p string) (string, error) { return "plain:" + p, nil }
func (PlainHasher) Verify(p, h string) bool      { return h == "plain:"+p }
