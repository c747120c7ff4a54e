package models

import (
	"errors"
	"time"
)

type OrderStatus string
type DeliveryStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed over phone
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping

	DeliveryNotShipped DeliveryStatus = "not_shipped"
	DeliveryShipped    DeliveryStatus = "shipped"
	DeliveryDelivered  DeliveryStatus = "delivered"

	PaymentUnpaid PaymentStatus = "unpaid" // Cash on delivery, not collected yet
	PaymentPaid   PaymentStatus = "paid"
	PaymentFailed PaymentStatus = "failed"
)

// OrderLine is one persisted row of the orders table: a single product and
// quantity within a customer's submission. Lines placed together share an
// OrderRef. ProductName is snapshotted at order time so later renames do not
// rewrite history; TotalPrice is computed at submission and never recomputed.
type OrderLine struct {
	ID             string         `json:"id,omitempty"`
	OrderRef       string         `json:"order_ref"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	Address        string         `json:"address"`
	ProductID      string         `json:"product_id"`
	ProductName    string         `json:"product_name"`
	Quantity       int            `json:"quantity"`
	TotalPrice     int            `json:"total_price"`
	CreatedAt      time.Time      `json:"created_at"`
	OrderStatus    OrderStatus    `json:"order_status"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
}

// Status field names accepted by the per-field admin update.
const (
	FieldOrderStatus    = "order_status"
	FieldDeliveryStatus = "delivery_status"
	FieldPaymentStatus  = "payment_status"
)

func MapOrderStatus(status string) (OrderStatus, error) {
	switch OrderStatus(status) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func MapDeliveryStatus(status string) (DeliveryStatus, error) {
	switch DeliveryStatus(status) {
	case DeliveryNotShipped:
		return DeliveryNotShipped, nil
	case DeliveryShipped:
		return DeliveryShipped, nil
	case DeliveryDelivered:
		return DeliveryDelivered, nil
	default:
		return "", errors.New("invalid delivery status")
	}
}

func MapPaymentStatus(status string) (PaymentStatus, error) {
	switch PaymentStatus(status) {
	case PaymentUnpaid:
		return PaymentUnpaid, nil
	case PaymentPaid:
		return PaymentPaid, nil
	case PaymentFailed:
		return PaymentFailed, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// ValidateStatusField checks a field/value pair for the per-field update and
// returns the value in canonical form.
func ValidateStatusField(field, value string) (string, error) {
	switch field {
	case FieldOrderStatus:
		s, err := MapOrderStatus(value)
		return string(s), err
	case FieldDeliveryStatus:
		s, err := MapDeliveryStatus(value)
		return string(s), err
	case FieldPaymentStatus:
		s, err := MapPaymentStatus(value)
		return string(s), err
	default:
		return "", errors.New("invalid status field")
	}
}
