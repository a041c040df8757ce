package payment

import (
	"context"
	"fmt"
	"log"

	"wellnexus_back_end/internal/models"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeGateway is the real-money implementation of the Gateway contract,
// used when STRIPE_SECRET_KEY is configured. Amounts are rupees, Stripe
// wants paise.
type StripeGateway struct{}

func (StripeGateway) Initiate(ctx context.Context, amount float64, addr *models.DeliveryAddress) (models.PaymentRecord, error) {
	metadata := map[string]string{}
	if addr != nil {
		metadata["delivery_name"] = addr.Name
		metadata["delivery_city"] = addr.City
		metadata["delivery_pincode"] = addr.Pincode
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String("inr"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: metadata,
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Printf("❌ Stripe error: %v", err)
		return models.PaymentRecord{}, fmt.Errorf("%w: %v", ErrDeclined, err)
	}

	log.Printf("💳 PaymentIntent created: %s (₹%.2f)", intent.ID, amount)

	return models.PaymentRecord{
		Amount:        amount,
		OrderID:       fmt.Sprintf("ORD%s", intent.ID),
		TransactionID: intent.ID,
		Method:        "Card",
		Delivery:      addr,
	}, nil
}
