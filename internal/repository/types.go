package repository

import "time"

// CatalogFilter narrows and orders the product list query.
type CatalogFilter struct {
	Page     int
	PageSize int
	Category string // empty or "All" means no category restriction
	MinPrice *float64
	MaxPrice *float64
	Color    string
	Featured *bool
	SortBy   string // newest / price-asc / price-desc / rating
}

// OrderListFilter narrows the order list query.
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	Email       string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ProfileListFilter narrows the admin profile list query.
type ProfileListFilter struct {
	Page           int
	PageSize       int
	Keyword        string
	Role           string
	Blocked        *bool
	IncludeDeleted bool
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}
