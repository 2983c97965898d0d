package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/campusbites/canteen/internal/domain/errors"
	"github.com/campusbites/canteen/internal/domain/model"
	"github.com/campusbites/canteen/internal/test"
)

func menuFixture() (*MenuUseCase, *test.MenuRepositoryStub, *test.PublisherStub) {
	menu := &test.MenuRepositoryStub{
		Items: []model.MenuItem{
			{ID: 1, Name: "Masala Dosa", Price: 45, IsAvailable: true, IsVegetarian: true},
			{ID: 2, Name: "Pongal", Price: 35, IsAvailable: true, IsVegetarian: true, IsTodaysSpecial: true},
		},
	}
	publisher := &test.PublisherStub{}
	return NewMenuUseCase(menu, publisher, discardLogger()), menu, publisher
}

func TestMenuSpecials(t *testing.T) {
	uc, _, _ := menuFixture()

	specials, err := uc.Specials(context.Background())
	if err != nil {
		t.Fatalf("specials: %v", err)
	}
	if len(specials) != 1 || specials[0].Name != "Pongal" {
		t.Fatalf("unexpected specials: %+v", specials)
	}
}

func TestMenuToggleAvailabilityPublishes(t *testing.T) {
	uc, menu, publisher := menuFixture()

	item, err := uc.ToggleAvailability(context.Background(), 1)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if item.IsAvailable {
		t.Fatal("expected item to be unavailable after toggle")
	}
	if menu.Items[0].IsAvailable {
		t.Fatal("stub state must reflect the flip")
	}

	events := publisher.Menus()
	if len(events) != 1 {
		t.Fatalf("expected one menu event, got %d", len(events))
	}
	if events[0].ItemID != 1 || events[0].IsAvailable {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestMenuToggleAvailabilityUnknownItem(t *testing.T) {
	uc, _, publisher := menuFixture()

	if _, err := uc.ToggleAvailability(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(publisher.Menus()) != 0 {
		t.Fatal("no event expected for a failed toggle")
	}
}

func TestMenuToggleSurvivesPublishFailure(t *testing.T) {
	uc, _, publisher := menuFixture()
	publisher.Err = errors.New("broker down")

	item, err := uc.ToggleAvailability(context.Background(), 2)
	if err != nil {
		t.Fatalf("toggle must not fail on publish error: %v", err)
	}
	if item.IsAvailable {
		t.Fatal("expected item to be unavailable after toggle")
	}
}
