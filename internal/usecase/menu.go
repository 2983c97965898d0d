package usecase

import (
	"context"
	"log/slog"

	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/domain/repository"
	"github.com/campusbites/canteen/internal/notify"
)

// MenuUseCase serves the live menu and the kitchen's availability toggle.
type MenuUseCase struct {
	menu      repository.MenuRepository
	publisher notify.Publisher
	logger    *slog.Logger
}

// NewMenuUseCase constructs MenuUseCase.
func NewMenuUseCase(menu repository.MenuRepository, publisher notify.Publisher, logger *slog.Logger) *MenuUseCase {
	return &MenuUseCase{menu: menu, publisher: publisher, logger: logger}
}

// Categories returns active categories with their items.
func (u *MenuUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.menu.Categories(ctx)
}

// Specials returns today's available specials.
func (u *MenuUseCase) Specials(ctx context.Context) ([]model.MenuItem, error) {
	return u.menu.Specials(ctx)
}

// GetItem returns one menu item.
func (u *MenuUseCase) GetItem(ctx context.Context, id int64) (*model.MenuItem, error) {
	return u.menu.GetItem(ctx, id)
}

// ToggleAvailability flips an item's availability and fans the change out
// to the displays.
func (u *MenuUseCase) ToggleAvailability(ctx context.Context, id int64) (*model.MenuItem, error) {
	item, err := u.menu.ToggleAvailability(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.publisher.PublishMenu(ctx, notify.NewMenuEvent(item)); err != nil {
		u.logger.Error("menu event publish failed", "item", item.Name, "error", err)
	}
	return item, nil
}
