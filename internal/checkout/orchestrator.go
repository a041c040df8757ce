package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/payment"

	"github.com/gocql/gocql"
)

type State int

const (
	StateIdle State = iota
	StateValidating
	StateAddressCollection
	StatePaymentInProgress
	StatePaymentSucceeded
	StatePaymentFailed
	StateOrderPersisting
	StateComplete
)

var (
	ErrNotAuthenticated  = errors.New("checkout requires an authenticated user")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrAddressIncomplete = errors.New("delivery address is incomplete")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Carts is the slice of the cart store the orchestrator needs.
type Carts interface {
	Read(ctx context.Context, userID string) models.Cart
	Clear(ctx context.Context, userID string) error
}

type OrderRepo interface {
	CreateOrder(ctx context.Context, order models.Order) error
}

type SessionRepo interface {
	CreateSession(ctx context.Context, session models.TherapySession) error
}

// StockRepo re-validates and consumes product stock. Available reflects the
// catalog at payment time, not whatever the cart was built against.
type StockRepo interface {
	Available(ctx context.Context, productID string) (int, error)
	Consume(ctx context.Context, userID, productID string, quantity int) error
}

// Notifier is the transient-feedback surface; every validation failure,
// success and partial failure goes through it.
type Notifier interface {
	Notify(ctx context.Context, userID, message, level string)
}

// Orchestrator drives one checkout flow: validation, optional address
// collection, payment, and per-line-item order persistence.
type Orchestrator struct {
	Carts    Carts
	Gateway  payment.Gateway
	Orders   OrderRepo
	Sessions SessionRepo
	Stock    StockRepo
	Notify   Notifier
}

// Outcome describes where a checkout run ended up.
type Outcome struct {
	State         State                `json:"-"`
	Payment       models.PaymentRecord `json:"payment"`
	Persisted     int                  `json:"persisted"`
	Failed        int                  `json:"failed"`
	MissingFields []string             `json:"missing_fields,omitempty"`
}

// Run executes the state machine for one user. The cart is only ever
// cleared after a confirmed payment; every earlier exit leaves it intact.
func (o *Orchestrator) Run(ctx context.Context, userID string, addr *models.DeliveryAddress) (Outcome, error) {
	// Idle → validating
	if userID == "" {
		return Outcome{State: StateIdle}, ErrNotAuthenticated
	}

	cart := o.Carts.Read(ctx, userID)
	if cart.IsEmpty() {
		o.Notify.Notify(ctx, userID, "Your cart is empty", "warning")
		return Outcome{State: StateIdle}, ErrEmptyCart
	}

	// Stock may have moved since the cart was built, so every product line
	// is re-checked against the catalog before any money changes hands.
	for _, item := range cart.Products {
		available, err := o.Stock.Available(ctx, item.ProductID)
		if err != nil {
			log.Printf("❌ Stock check failed for product %s: %v", item.ProductID, err)
			o.Notify.Notify(ctx, userID, "Could not verify product availability, please try again", "error")
			return Outcome{State: StateValidating}, err
		}
		if available < item.Quantity {
			o.Notify.Notify(ctx, userID,
				fmt.Sprintf("Only %d left of %s, please update your cart", available, item.Name),
				"warning")
			return Outcome{State: StateValidating}, ErrInsufficientStock
		}
	}

	// validating → AddressCollection, only when products ship somewhere.
	// Session-only checkouts fall straight through to payment.
	if len(cart.Products) > 0 {
		if missing := addr.MissingFields(); len(missing) > 0 {
			o.Notify.Notify(ctx, userID, "Please fill in your delivery address", "warning")
			return Outcome{State: StateAddressCollection, MissingFields: missing}, ErrAddressIncomplete
		}
	} else {
		addr = nil
	}

	// AddressCollection → PaymentInProgress
	total := cart.GrandTotal()
	record, err := o.Gateway.Initiate(ctx, total, addr)
	if err != nil {
		if errors.Is(err, payment.ErrCancelled) {
			// Explicit dismissal: back to where the user was, cart untouched.
			return Outcome{State: StatePaymentInProgress}, err
		}
		o.Notify.Notify(ctx, userID, "Payment failed, please try again", "error")
		return Outcome{State: StatePaymentFailed}, err
	}

	// PaymentSucceeded → OrderPersisting. Payment is terminal: nothing
	// after this point can roll it back, and each line item persists
	// independently so one failure never blocks the rest.
	persisted, failed := o.persistLineItems(ctx, userID, cart, record)

	// OrderPersisting → Complete: the cart clears regardless of partial
	// failure, trading a possible lost order against a double charge.
	if err := o.Carts.Clear(ctx, userID); err != nil {
		log.Printf("⚠️ Cart clear failed for %s after payment %s: %v", userID, record.TransactionID, err)
	}

	if failed > 0 {
		o.Notify.Notify(ctx, userID,
			fmt.Sprintf("Payment successful but %d of %d order saves failed. Please contact support with transaction %s",
				failed, persisted+failed, record.TransactionID),
			"warning")
	} else {
		o.Notify.Notify(ctx, userID, "Payment successful! Your order is confirmed", "success")
	}

	return Outcome{State: StateComplete, Payment: record, Persisted: persisted, Failed: failed}, nil
}

// persistLineItems writes one order row per product and one therapy session
// per booking, sequentially, counting failures instead of aborting.
func (o *Orchestrator) persistLineItems(ctx context.Context, userID string, cart models.Cart, record models.PaymentRecord) (persisted, failed int) {
	for _, item := range cart.Products {
		order := models.Order{
			UserID:      userID,
			ProductID:   item.ProductID,
			ProductName: item.Name,
			Quantity:    item.Quantity,
			TotalAmount: item.Price * float64(item.Quantity),
			OrderDate:   time.Now(),
			Status:      "completed",

			TransactionID: record.TransactionID,
			PaymentMethod: record.Method,
		}
		if record.Delivery != nil {
			order.DeliveryName = record.Delivery.Name
			order.DeliveryPhone = record.Delivery.Phone
			order.DeliveryEmail = record.Delivery.Email
			order.DeliveryAddress = record.Delivery.Address
			order.DeliveryCity = record.Delivery.City
			order.DeliveryState = record.Delivery.State
			order.DeliveryPincode = record.Delivery.Pincode
		}

		if err := o.Orders.CreateOrder(ctx, order); err != nil {
			log.Printf("❌ Order save failed for product %s (txn %s): %v", item.ProductID, record.TransactionID, err)
			failed++
			continue
		}
		persisted++

		// The sale already happened; a failed decrement is an inventory
		// drift to reconcile, not a reason to fail the order.
		if err := o.Stock.Consume(ctx, userID, item.ProductID, item.Quantity); err != nil {
			log.Printf("⚠️ Stock decrement failed for product %s (txn %s): %v", item.ProductID, record.TransactionID, err)
		}
	}

	for _, item := range cart.Sessions {
		session, err := sessionFromLineItem(userID, item)
		if err == nil {
			err = o.Sessions.CreateSession(ctx, session)
		}
		if err != nil {
			log.Printf("❌ Session save failed for practitioner %s (txn %s): %v", item.PractitionerID, record.TransactionID, err)
			failed++
			continue
		}
		persisted++
	}

	return persisted, failed
}

func sessionFromLineItem(userID string, item models.SessionLineItem) (models.TherapySession, error) {
	at, err := time.Parse("2006-01-02 15:04", item.Date+" "+item.Time)
	if err != nil {
		return models.TherapySession{}, fmt.Errorf("invalid session date-time %q %q: %w", item.Date, item.Time, err)
	}

	practitionerID, err := gocql.ParseUUID(item.PractitionerID)
	if err != nil {
		return models.TherapySession{}, fmt.Errorf("invalid practitioner id %q: %w", item.PractitionerID, err)
	}

	return models.TherapySession{
		PractitionerID: practitionerID,
		UserID:         userID,
		Date:           at,
		Status:         "booked",
		Notes:          fmt.Sprintf("%s session booked via checkout", item.Specialization),
		CreatedAt:      time.Now(),
	}, nil
}
