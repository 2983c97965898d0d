package dto

// MenuItemResponse is one live menu entry.
type MenuItemResponse struct {
	ID              int64   `json:"id"`
	CategoryID      int64   `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	PreparationTime int     `json:"preparation_time"`
	IsAvailable     bool    `json:"is_available"`
	IsTodaysSpecial bool    `json:"is_todays_special"`
	IsVegetarian    bool    `json:"is_vegetarian"`
}

// CategoryResponse groups menu items for the menu page.
type CategoryResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Items       []MenuItemResponse `json:"items"`
}
