package test

import (
	"context"
	"sync"

	"github.com/campusbites/canteen/internal/notify"
)

// PublisherStub records published events for assertions.
type PublisherStub struct {
	mu          sync.Mutex
	OrderEvents []notify.OrderEvent
	MenuEvents  []notify.MenuEvent
	Err         error
}

func (p *PublisherStub) PublishOrder(_ context.Context, event notify.OrderEvent) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.OrderEvents = append(p.OrderEvents, event)
	return nil
}

func (p *PublisherStub) PublishMenu(_ context.Context, event notify.MenuEvent) error {
	if p.Err != nil {
		return p.Err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.MenuEvents = append(p.MenuEvents, event)
	return nil
}

func (p *PublisherStub) Close() error { return nil }

// Orders returns a copy of recorded order events.
func (p *PublisherStub) Orders() []notify.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notify.OrderEvent, len(p.OrderEvents))
	copy(out, p.OrderEvents)
	return out
}

// Menus returns a copy of recorded menu events.
func (p *PublisherStub) Menus() []notify.MenuEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notify.MenuEvent, len(p.MenuEvents))
	copy(out, p.MenuEvents)
	return out
}
