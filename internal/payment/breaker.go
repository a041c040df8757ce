package payment

import (
	"context"
	"time"

	"wellnexus_back_end/internal/models"

	"github.com/sony/gobreaker/v2"
)

// BreakerGateway wraps another gateway with a bounded timeout and a circuit
// breaker, so a wedged gateway surfaces a failure instead of an indefinite
// pending state.
type BreakerGateway struct {
	inner   Gateway
	cb      *gobreaker.CircuitBreaker[models.PaymentRecord]
	timeout time.Duration
}

func WithBreaker(inner Gateway, timeout time.Duration) *BreakerGateway {
	cb := gobreaker.NewCircuitBreaker[models.PaymentRecord](gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// User dismissal is not a gateway fault.
			return err == nil || err == ErrCancelled
		},
	})
	return &BreakerGateway{inner: inner, cb: cb, timeout: timeout}
}

func (b *BreakerGateway) Initiate(ctx context.Context, amount float64, addr *models.DeliveryAddress) (models.PaymentRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	return b.cb.Execute(func() (models.PaymentRecord, error) {
		return b.inner.Initiate(ctx, amount, addr)
	})
}
