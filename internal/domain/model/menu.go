package model

import "time"

// Category groups menu items, e.g. Breakfast or Snacks.
type Category struct {
	ID          int64
	Name        string
	Description string
	IsActive    bool
	Items       []MenuItem
}

// MenuItem is a live menu entry. Orders snapshot name and price instead of
// referencing it directly.
type MenuItem struct {
	ID              int64
	CategoryID      int64
	Name            string
	Description     string
	Price           float64
	PreparationTime int
	IsAvailable     bool
	IsTodaysSpecial bool
	IsVegetarian    bool
	CreatedAt       time.Time
}

// PriceRange summarizes menu pricing for the chatbot.
type PriceRange struct {
	Min float64
	Max float64
	Avg float64
}
