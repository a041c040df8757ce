package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Order is one product line item of a completed checkout.
type Order struct {
	ID          gocql.UUID `json:"id"`
	UserID      string     `json:"user_id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name"`
	Quantity    int        `json:"quantity"`
	TotalAmount float64    `json:"total_amount"`
	OrderDate   time.Time  `json:"order_date"`
	Status      string     `json:"status"`

	// Delivery snapshot taken at checkout time
	DeliveryName    string `json:"delivery_name,omitempty"`
	DeliveryPhone   string `json:"delivery_phone,omitempty"`
	DeliveryEmail   string `json:"delivery_email,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
	DeliveryCity    string `json:"delivery_city,omitempty"`
	DeliveryState   string `json:"delivery_state,omitempty"`
	DeliveryPincode string `json:"delivery_pincode,omitempty"`

	// Payment tracking
	TransactionID string `json:"transaction_id,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
}
