package constants

// Order status constants. Values are case-sensitive and stored as-is.
const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
)

// Profile role constants.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Product category constants.
const (
	CategoryRoses    = "Roses"
	CategoryOrchids  = "Orchids"
	CategoryLilies   = "Lilies"
	CategoryTulips   = "Tulips"
	CategoryPeonies  = "Peonies"
	CategoryDaisies  = "Daisies"
	CategoryMixed    = "Mixed Bouquets"
	CategoryAll      = "All"
)

// ProductCategories lists every assignable category, in display order.
// CategoryAll is a query sentinel only and never stored on a product.
var ProductCategories = []string{
	CategoryRoses,
	CategoryOrchids,
	CategoryLilies,
	CategoryTulips,
	CategoryPeonies,
	CategoryDaisies,
	CategoryMixed,
}

// Catalog sort keys.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
)

// Coupon constants.
const (
	CouponWelcome           = "WELCOME10"
	CouponWelcomePercentOff = 10
)

// Search result cap for the typeahead endpoint.
const SearchResultLimit = 10

// Queue constants.
const (
	QueueDefault         = "default"
	TaskWelcomeEmail     = "email:welcome"
	TaskOrderStatusEmail = "order:status_email"
)

// Cache defaults.
const (
	RedisPrefixDefault = "bd"
)
