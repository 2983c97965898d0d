package repository

import (
	"context"

	"github.com/campusbites/canteen/internal/domain/model"
)

// MenuRepository provides live menu access for browsing, checkout snapshots
// and the chatbot's dynamic answers.
type MenuRepository interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Specials(ctx context.Context) ([]model.MenuItem, error)
	GetItem(ctx context.Context, id int64) (*model.MenuItem, error)
	GetItems(ctx context.Context, ids []int64) ([]model.MenuItem, error)
	ToggleAvailability(ctx context.Context, id int64) (*model.MenuItem, error)
	ItemsUnder(ctx context.Context, price float64, limit int) ([]model.MenuItem, error)
	Vegetarian(ctx context.Context, veg bool, limit int) ([]model.MenuItem, error)
	Popular(ctx context.Context, limit int) ([]model.MenuItem, error)
	Prices(ctx context.Context) (*model.PriceRange, error)
}
