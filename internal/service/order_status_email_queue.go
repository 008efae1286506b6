package service

import (
	"strings"

	"github.com/botanical-decor/shop-api/internal/queue"
	"github.com/botanical-decor/shop-api/internal/repository"
)

// enqueueOrderStatusEmailTask queues a status notification for an order.
// Returns skipped=true when no receiver email can be resolved, which is not
// an error: guest checkouts with a bad address simply get no mail.
func enqueueOrderStatusEmailTask(orderRepo repository.OrderRepository, queueClient *queue.Client, orderID uint, status string) (skipped bool, err error) {
	if queueClient == nil || orderID == 0 {
		return true, nil
	}
	if orderRepo != nil {
		receiverEmail, lookupErr := orderRepo.ResolveReceiverEmailByOrderID(orderID)
		if lookupErr == nil && strings.TrimSpace(receiverEmail) == "" {
			return true, nil
		}
	}

	if err := queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}
