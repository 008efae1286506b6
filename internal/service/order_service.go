package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/botanical-decor/shop-api/internal/constants"
	"github.com/botanical-decor/shop-api/internal/logger"
	"github.com/botanical-decor/shop-api/internal/models"
	"github.com/botanical-decor/shop-api/internal/queue"
	"github.com/botanical-decor/shop-api/internal/repository"

	"gorm.io/gorm"
)

// OrderService owns checkout and the order lifecycle.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	pricing     *PricingService
	queueClient *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, pricing *PricingService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		pricing:     pricing,
		queueClient: queueClient,
	}
}

// CheckoutInput is the place-order request. The cart itself is read
// server-side; the client only supplies shipping details and a coupon.
type CheckoutInput struct {
	UserID          uint
	CouponCode      string
	ShippingName    string
	ShippingEmail   string
	ShippingPhone   string
	ShippingAddress string
}

// Checkout converts the user's cart into an order. Prices, discount and
// shipping are computed server-side from the current catalog; the cart is
// cleared and stock decremented in the same transaction as the insert.
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidCartItem
	}
	name := strings.TrimSpace(input.ShippingName)
	email := strings.TrimSpace(strings.ToLower(input.ShippingEmail))
	address := strings.TrimSpace(input.ShippingAddress)
	if name == "" || email == "" || address == "" {
		return nil, ErrShippingRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	items, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	lines := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || item.Product.ID == 0 {
			continue
		}
		lines = append(lines, item)
	}
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}

	quote := s.pricing.QuoteCart(lines, input.CouponCode)

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPending,
		Subtotal:       quote.Subtotal,
		DiscountAmount: quote.Discount,
		ShippingFee:    quote.ShippingFee,
		TotalAmount:    quote.Total,
		ShippingName:   name,
		ShippingEmail:  email,
		ShippingPhone:  strings.TrimSpace(input.ShippingPhone),
		ShippingAddr:   address,
	}
	if quote.CouponValid {
		order.CouponCode = quote.CouponCode
	}

	orderItems := make([]models.OrderItem, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			ImageURL:    line.ImageURL,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			TotalPrice:  line.LineTotal,
		})
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		txProducts := s.productRepo.WithTx(tx)
		for _, line := range quote.Lines {
			rows, err := txProducts.AdjustStock(line.ProductID, -line.Quantity)
			if err != nil {
				return err
			}
			if rows == 0 {
				return ErrInsufficientStock
			}
		}
		if err := s.orderRepo.WithTx(tx).Create(order, orderItems); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}
	order.Items = orderItems

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTask(s.orderRepo, s.queueClient, order.ID, order.Status); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", order.Status,
				"error", err,
			)
		}
	}
	return order, nil
}

// ListByUser returns the user's order history, newest first.
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrOrderNotFound
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetByIDAndUser returns one of the user's orders or ErrOrderNotFound.
func (s *OrderService) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListAdmin returns orders across all users for the admin panel.
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetByID returns any order by ID for the admin panel.
func (s *OrderService) GetByID(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatus advances an order along the fulfillment flow. Only the
// next step forward is accepted; Delivered is terminal. The write is a
// compare-and-swap on the status read here, so two admins racing the same
// transition cannot apply it twice.
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := strings.TrimSpace(targetStatus)
	if !isKnownOrderStatus(target) {
		return nil, ErrOrderStatusInvalid
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	rows, err := s.orderRepo.UpdateStatus(order.ID, order.Status, target)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		// Lost the race to a concurrent transition.
		return nil, ErrOrderStatusInvalid
	}
	order.Status = target

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTask(s.orderRepo, s.queueClient, order.ID, target); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", target,
				"error", err,
			)
		}
	}
	return order, nil
}

// generateOrderNo builds a human-quotable order number: prefix, second
// resolution timestamp, and a random numeric suffix.
func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("BD%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
