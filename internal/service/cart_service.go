package service

import (
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/repository"
)

// AddCartItemInput is the add-to-cart request.
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// CartService owns cart reads and writes. Pricing lives in PricingService;
// the cart only stores product references and quantities.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewCartService creates a cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, pricing *PricingService) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// ListByUser returns the reconciled cart: lines whose product has vanished
// from the catalog are dropped from the result and removed from storage.
func (s *CartService) ListByUser(userID uint) ([]models.CartItem, error) {
	if userID == 0 {
		return nil, ErrInvalidCartItem
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	kept := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || item.Product.ID == 0 {
			_, _ = s.cartRepo.DeleteByIDAndUser(item.ID, userID)
			continue
		}
		kept = append(kept, item)
	}
	return kept, nil
}

// QuoteByUser prices the user's current cart with an optional coupon code.
func (s *CartService) QuoteByUser(userID uint, couponCode string) (Quote, error) {
	items, err := s.ListByUser(userID)
	if err != nil {
		return Quote{}, err
	}
	return s.pricing.QuoteCart(items, couponCode), nil
}

// AddItem adds quantity of a product to the cart. Repeated adds of the same
// product accumulate into one line via an atomic upsert.
func (s *CartService) AddItem(input AddCartItemInput) error {
	if input.UserID == 0 || input.ProductID == 0 || input.Quantity <= 0 {
		return ErrInvalidCartItem
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	return s.cartRepo.AddQuantity(input.UserID, input.ProductID, input.Quantity)
}

// UpdateQuantity sets a cart line's quantity. A quantity below 1 is a
// silent no-op: the storefront clamps its stepper at 1 and removal is a
// separate, explicit action.
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) error {
	if userID == 0 || itemID == 0 {
		return ErrInvalidCartItem
	}
	if quantity < 1 {
		return nil
	}
	rows, err := s.cartRepo.UpdateQuantity(itemID, userID, quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem deletes a cart line owned by the user.
func (s *CartService) RemoveItem(userID, itemID uint) error {
	if userID == 0 || itemID == 0 {
		return ErrInvalidCartItem
	}
	rows, err := s.cartRepo.DeleteByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidCartItem
	}
	return s.cartRepo.ClearByUser(userID)
}
