package db

import (
	"context"

	"spendlog-server/src/models"
)

func (s *Store) CreateCategory(ctx context.Context, c *models.Category) (*models.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, color)
		VALUES ($1, $2, $3)
		RETURNING category_id, user_id, name, color
	`
	var out models.Category
	err := s.pool.QueryRow(ctx, query, c.UserID, c.Name, c.Color).
		Scan(&out.ID, &out.UserID, &out.Name, &out.Color)
	if err != nil {
		return nil, mapErr(err)
	}
	return &out, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	query := `
		SELECT category_id, user_id, name, color
		FROM categories WHERE category_id = $1
	`
	var c models.Category
	err := s.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.UserID, &c.Name, &c.Color)
	if err != nil {
		return nil, mapErr(err)
	}
	return &c, nil
}

func (s *Store) GetCategoriesByUser(ctx context.Context, userID int64) ([]models.Category, error) {
	query := `
		SELECT category_id, user_id, name, color
		FROM categories WHERE user_id = $1
		ORDER BY category_id
	`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategory never moves a row to another owner: user_id is only used
// in the WHERE clause.
func (s *Store) UpdateCategory(ctx context.Context, c *models.Category) error {
	query := `
		UPDATE categories
		SET name = $1, color = $2
		WHERE category_id = $3 AND user_id = $4
	`
	cmd, err := s.pool.Exec(ctx, query, c.Name, c.Color, c.ID, c.UserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
