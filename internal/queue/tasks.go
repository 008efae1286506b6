package queue

import (
	"encoding/json"

	"github.com/botanical-decor/shop-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcomeEmail sends the post-registration welcome email.
	TaskWelcomeEmail = constants.TaskWelcomeEmail
	// TaskOrderStatusEmail notifies the customer of an order status change.
	TaskOrderStatusEmail = constants.TaskOrderStatusEmail
)

// WelcomeEmailPayload is the welcome email task body.
type WelcomeEmailPayload struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// OrderStatusEmailPayload is the order status email task body.
type OrderStatusEmailPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// NewWelcomeEmailTask builds the welcome email task.
func NewWelcomeEmailTask(payload WelcomeEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWelcomeEmail, body), nil
}

// NewOrderStatusEmailTask builds the order status email task.
func NewOrderStatusEmailTask(payload OrderStatusEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEmail, body), nil
}
