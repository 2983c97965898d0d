package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
)

const menuItemColumns = `id, category_id, name, description, price, preparation_time, is_available, is_todays_special, is_vegetarian, created_at`

func scanMenuItems(rows pgx.Rows) ([]model.MenuItem, error) {
	defer rows.Close()
	var result []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := rows.Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Price,
			&m.PreparationTime, &m.IsAvailable, &m.IsTodaysSpecial, &m.IsVegetarian, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *menuRepository) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT id, name, description, is_active FROM categories WHERE is_active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive); err != nil {
			rows.Close()
			return nil, err
		}
		categories = append(categories, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range categories {
		itemRows, err := r.storage.pool.Query(ctx,
			`SELECT `+menuItemColumns+` FROM menu_items WHERE category_id=$1 ORDER BY name`, categories[i].ID)
		if err != nil {
			return nil, err
		}
		items, err := scanMenuItems(itemRows)
		if err != nil {
			return nil, err
		}
		categories[i].Items = items
	}
	return categories, nil
}

func (r *menuRepository) Specials(ctx context.Context) ([]model.MenuItem, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE is_todays_special AND is_available ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return scanMenuItems(rows)
}

func (r *menuRepository) GetItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.storage.pool.QueryRow(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id=$1`, id,
	).Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Price,
		&m.PreparationTime, &m.IsAvailable, &m.IsTodaysSpecial, &m.IsVegetarian, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *menuRepository) GetItems(ctx context.Context, ids []int64) ([]model.MenuItem, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	return scanMenuItems(rows)
}

func (r *menuRepository) ToggleAvailability(ctx context.Context, id int64) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.storage.pool.QueryRow(ctx,
		`UPDATE menu_items SET is_available = NOT is_available WHERE id=$1 RETURNING `+menuItemColumns, id,
	).Scan(&m.ID, &m.CategoryID, &m.Name, &m.Description, &m.Price,
		&m.PreparationTime, &m.IsAvailable, &m.IsTodaysSpecial, &m.IsVegetarian, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *menuRepository) ItemsUnder(ctx context.Context, price float64, limit int) ([]model.MenuItem, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE is_available AND price <= $1 ORDER BY price LIMIT $2`,
		price, limit)
	if err != nil {
		return nil, err
	}
	return scanMenuItems(rows)
}

func (r *menuRepository) Vegetarian(ctx context.Context, veg bool, limit int) ([]model.MenuItem, error) {
	rows, err := r.storage.pool.Query(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE is_available AND is_vegetarian = $1 ORDER BY name LIMIT $2`,
		veg, limit)
	if err != nil {
		return nil, err
	}
	return scanMenuItems(rows)
}

func (r *menuRepository) Popular(ctx context.Context, limit int) ([]model.MenuItem, error) {
	const query = `SELECT mi.id, mi.category_id, mi.name, mi.description, mi.price,
                          mi.preparation_time, mi.is_available, mi.is_todays_special, mi.is_vegetarian, mi.created_at
                   FROM menu_items mi
                   JOIN order_items oi ON oi.menu_item_id = mi.id
                   WHERE mi.is_available
                   GROUP BY mi.id
                   ORDER BY SUM(oi.quantity) DESC
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanMenuItems(rows)
}

func (r *menuRepository) Prices(ctx context.Context) (*model.PriceRange, error) {
	var p model.PriceRange
	err := r.storage.pool.QueryRow(ctx,
		`SELECT COALESCE(MIN(price),0), COALESCE(MAX(price),0), COALESCE(AVG(price),0)
         FROM menu_items WHERE is_available`,
	).Scan(&p.Min, &p.Max, &p.Avg)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
