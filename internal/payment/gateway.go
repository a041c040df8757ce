package payment

import (
	"context"
	"errors"

	"wellnexus_back_end/internal/models"
)

var (
	// ErrCancelled: the user dismissed the payment before confirmation.
	ErrCancelled = errors.New("payment cancelled")
	// ErrDeclined: the gateway refused the payment.
	ErrDeclined = errors.New("payment declined")
)

// Gateway initiates a payment for the computed amount and, for deliveries,
// the collected address. The simulated UPI gateway is the default; the
// contract is swappable for a real one without touching the checkout
// orchestrator.
type Gateway interface {
	Initiate(ctx context.Context, amount float64, addr *models.DeliveryAddress) (models.PaymentRecord, error)
}
