package checkout

import (
	"context"
	"log"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaOrders persists order rows in the bookings keyspace.
type ScyllaOrders struct{}

func (ScyllaOrders) CreateOrder(ctx context.Context, order models.Order) error {
	session, err := database.GetBookingsSession()
	if err != nil {
		return err
	}

	if order.ID == (gocql.UUID{}) {
		order.ID = gocql.TimeUUID()
	}

	return session.Query(`INSERT INTO orders (
			id, user_id, product_id, product_name, quantity, total_amount,
			order_date, status, delivery_name, delivery_phone, delivery_email,
			delivery_address, delivery_city, delivery_state, delivery_pincode,
			transaction_id, payment_method
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.ProductID, order.ProductName,
		order.Quantity, order.TotalAmount, order.OrderDate, order.Status,
		order.DeliveryName, order.DeliveryPhone, order.DeliveryEmail,
		order.DeliveryAddress, order.DeliveryCity, order.DeliveryState,
		order.DeliveryPincode, order.TransactionID, order.PaymentMethod,
	).WithContext(ctx).Exec()
}

// ScyllaStock reads and decrements product stock in the catalog keyspace,
// leaving a stock movement row behind for every sale.
type ScyllaStock struct{}

func (ScyllaStock) Available(ctx context.Context, productID string) (int, error) {
	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return 0, err
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return 0, err
	}

	var stock int
	if err := session.Query(`SELECT stock FROM products WHERE id = ?`, id).
		WithContext(ctx).Scan(&stock); err != nil {
		return 0, err
	}
	return stock, nil
}

func (ScyllaStock) Consume(ctx context.Context, userID, productID string, quantity int) error {
	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return err
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return err
	}

	var prev int
	if err := session.Query(`SELECT stock FROM products WHERE id = ?`, id).
		WithContext(ctx).Scan(&prev); err != nil {
		return err
	}

	newStock := prev - quantity
	if newStock < 0 {
		newStock = 0
	}

	if err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`,
		newStock, time.Now(), id).WithContext(ctx).Exec(); err != nil {
		return err
	}

	// Movement rows are an audit trail, not the source of truth.
	if err := session.Query(`INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
	                         VALUES (?, ?, 'sale', ?, ?, ?, 'Order sale', ?, ?)`,
		gocql.TimeUUID(), id, quantity, prev, newStock, userID, time.Now(),
	).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Stock movement save failed for product %s: %v", productID, err)
	}

	if newStock <= models.LowStockThreshold {
		log.Printf("⚠️ Low stock for product %s: %d remaining", productID, newStock)
	}

	return nil
}

// ScyllaSessions persists therapy sessions in the bookings keyspace.
type ScyllaSessions struct{}

func (ScyllaSessions) CreateSession(ctx context.Context, ts models.TherapySession) error {
	session, err := database.GetBookingsSession()
	if err != nil {
		return err
	}

	if ts.ID == (gocql.UUID{}) {
		ts.ID = gocql.TimeUUID()
	}
	if ts.CreatedAt.IsZero() {
		ts.CreatedAt = time.Now()
	}

	return session.Query(`INSERT INTO therapy_sessions (
			id, practitioner_id, user_id, date, status, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.ID, ts.PractitionerID, ts.UserID, ts.Date, ts.Status, ts.Notes, ts.CreatedAt,
	).WithContext(ctx).Exec()
}

// ScyllaNotifier stores user-facing notifications in the bookings keyspace
// and mirrors them to the log. Notification is fire-and-forget: a failed
// insert never fails the flow that emitted it.
type ScyllaNotifier struct{}

func (ScyllaNotifier) Notify(ctx context.Context, userID, message, level string) {
	log.Printf("🔔 [%s] %s: %s", level, userID, message)

	session, err := database.GetBookingsSession()
	if err != nil {
		return
	}

	if err := session.Query(`INSERT INTO notifications (id, user_id, message, level, read, created_at)
	                         VALUES (?, ?, ?, ?, false, ?)`,
		gocql.TimeUUID(), userID, message, level, time.Now(),
	).WithContext(ctx).Exec(); err != nil {
		log.Printf("⚠️ Notification save failed for %s: %v", userID, err)
	}
}
