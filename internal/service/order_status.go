package service

import (
	"strings"

	"github.com/botanical-decor/shop-api/internal/constants"
)

// allowedTransitions encodes the forward-only fulfillment flow. Delivered
// is terminal; there is no path backwards and no skipping Shipped.
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusShipped: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

// isKnownOrderStatus reports whether s is one of the lifecycle statuses.
// Matching is case-sensitive: "shipped" is not a status.
func isKnownOrderStatus(s string) bool {
	switch s {
	case constants.OrderStatusPending, constants.OrderStatusShipped, constants.OrderStatusDelivered:
		return true
	}
	return false
}

// isTransitionAllowed reports whether current may move to target.
func isTransitionAllowed(current, target string) bool {
	targets, ok := allowedTransitions[strings.TrimSpace(current)]
	if !ok {
		return false
	}
	return targets[strings.TrimSpace(target)]
}
