package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/payment"
)

type fakeCarts struct {
	cart    models.Cart
	cleared bool
}

func (f *fakeCarts) Read(context.Context, string) models.Cart { return f.cart }
func (f *fakeCarts) Clear(context.Context, string) error {
	f.cleared = true
	return nil
}

type fakeGateway struct {
	record models.PaymentRecord
	err    error
	calls  int
}

func (f *fakeGateway) Initiate(_ context.Context, amount float64, addr *models.DeliveryAddress) (models.PaymentRecord, error) {
	f.calls++
	if f.err != nil {
		return models.PaymentRecord{}, f.err
	}
	rec := f.record
	rec.Amount = amount
	rec.Delivery = addr
	return rec, nil
}

type fakeOrders struct {
	created []models.Order
	failAt  map[int]bool // by call index
	calls   int
}

func (f *fakeOrders) CreateOrder(_ context.Context, o models.Order) error {
	defer func() { f.calls++ }()
	if f.failAt[f.calls] {
		return errors.New("write timeout")
	}
	f.created = append(f.created, o)
	return nil
}

type fakeSessions struct {
	created []models.TherapySession
	err     error
}

func (f *fakeSessions) CreateSession(_ context.Context, s models.TherapySession) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, s)
	return nil
}

type fakeStock struct {
	available map[string]int // nil means plenty of everything
	availErr  error
	consumed  map[string]int
}

func (f *fakeStock) Available(_ context.Context, productID string) (int, error) {
	if f.availErr != nil {
		return 0, f.availErr
	}
	if f.available == nil {
		return 1000, nil
	}
	return f.available[productID], nil
}

func (f *fakeStock) Consume(_ context.Context, _, productID string, quantity int) error {
	if f.consumed == nil {
		f.consumed = map[string]int{}
	}
	f.consumed[productID] += quantity
	if f.available != nil {
		f.available[productID] -= quantity
	}
	return nil
}

type fakeNotifier struct {
	messages []string
	levels   []string
}

func (f *fakeNotifier) Notify(_ context.Context, _, message, level string) {
	f.messages = append(f.messages, message)
	f.levels = append(f.levels, level)
}

const practitionerID = "9f2c5f32-35a1-11f0-8000-000000000000"

func mixedCart() models.Cart {
	c := models.EmptyCart()
	c.Products = []models.ProductLineItem{
		{ProductID: "p1", Name: "Face Pack", Price: 100, Quantity: 2},
	}
	c.Sessions = []models.SessionLineItem{
		{PractitionerID: practitionerID, Practitioner: "Dr. Meera",
			Specialization: "ayurveda", Date: "2026-09-05", Time: "10:30", Fee: 500},
	}
	return c
}

func fullAddress() *models.DeliveryAddress {
	return &models.DeliveryAddress{
		Name: "Asha Rao", Phone: "9800000000", Email: "asha@example.com",
		Address: "12 MG Road", City: "Bengaluru", Pincode: "560001",
	}
}

func testOrchestrator(carts *fakeCarts, gw *fakeGateway) (*Orchestrator, *fakeOrders, *fakeSessions, *fakeNotifier) {
	orders := &fakeOrders{failAt: map[int]bool{}}
	sessions := &fakeSessions{}
	notify := &fakeNotifier{}
	o := &Orchestrator{Carts: carts, Gateway: gw, Orders: orders, Sessions: sessions, Stock: &fakeStock{}, Notify: notify}
	return o, orders, sessions, notify
}

func TestRunRequiresAuthentication(t *testing.T) {
	o, _, _, _ := testOrchestrator(&fakeCarts{cart: mixedCart()}, &fakeGateway{})

	_, err := o.Run(context.Background(), "", fullAddress())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestRunRejectsEmptyCart(t *testing.T) {
	carts := &fakeCarts{cart: models.EmptyCart()}
	gw := &fakeGateway{}
	o, _, _, notify := testOrchestrator(carts, gw)

	_, err := o.Run(context.Background(), "u1", fullAddress())
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if gw.calls != 0 {
		t.Fatal("payment must not start on an empty cart")
	}
	if len(notify.levels) == 0 || notify.levels[0] != "warning" {
		t.Fatalf("expected a warning notification, got %v", notify.levels)
	}
}

func TestRunRequiresAddressForProducts(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{}
	o, _, _, _ := testOrchestrator(carts, gw)

	outcome, err := o.Run(context.Background(), "u1", &models.DeliveryAddress{Name: "Asha"})
	if !errors.Is(err, ErrAddressIncomplete) {
		t.Fatalf("err = %v, want ErrAddressIncomplete", err)
	}
	if outcome.State != StateAddressCollection {
		t.Fatalf("state = %v, want StateAddressCollection", outcome.State)
	}
	if len(outcome.MissingFields) != 5 {
		t.Fatalf("missing = %v, want the 5 blank required fields", outcome.MissingFields)
	}
	if gw.calls != 0 {
		t.Fatal("payment must not start with an incomplete address")
	}
	if carts.cleared {
		t.Fatal("cart must survive a validation failure")
	}
}

func TestRunSessionOnlyCartSkipsAddress(t *testing.T) {
	c := models.EmptyCart()
	c.Sessions = []models.SessionLineItem{
		{PractitionerID: practitionerID, Date: "2026-09-05", Time: "10:30", Fee: 500},
	}
	carts := &fakeCarts{cart: c}
	gw := &fakeGateway{record: models.PaymentRecord{TransactionID: "TXN1", Method: "UPI Payment"}}
	o, _, sessions, _ := testOrchestrator(carts, gw)

	outcome, err := o.Run(context.Background(), "u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.State != StateComplete {
		t.Fatalf("state = %v, want StateComplete", outcome.State)
	}
	if outcome.Payment.Delivery != nil {
		t.Fatal("session-only checkout must carry no delivery address")
	}
	if len(sessions.created) != 1 {
		t.Fatalf("sessions persisted = %d, want 1", len(sessions.created))
	}
}

func TestRunCancelledPaymentLeavesCartIntact(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{err: payment.ErrCancelled}
	o, orders, _, _ := testOrchestrator(carts, gw)

	outcome, err := o.Run(context.Background(), "u1", fullAddress())
	if !errors.Is(err, payment.ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if outcome.State != StatePaymentInProgress {
		t.Fatalf("state = %v, want StatePaymentInProgress", outcome.State)
	}
	if carts.cleared {
		t.Fatal("cancelled payment must not clear the cart")
	}
	if len(orders.created) != 0 {
		t.Fatal("cancelled payment must persist nothing")
	}
}

func TestRunGatewayFailureNotifies(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{err: errors.New("gateway unreachable")}
	o, _, _, notify := testOrchestrator(carts, gw)

	outcome, err := o.Run(context.Background(), "u1", fullAddress())
	if err == nil {
		t.Fatal("expected gateway error")
	}
	if outcome.State != StatePaymentFailed {
		t.Fatalf("state = %v, want StatePaymentFailed", outcome.State)
	}
	if carts.cleared {
		t.Fatal("failed payment must not clear the cart")
	}
	if len(notify.levels) == 0 || notify.levels[len(notify.levels)-1] != "error" {
		t.Fatalf("expected an error notification, got %v", notify.levels)
	}
}

func TestRunSuccessPersistsEveryLineItem(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{record: models.PaymentRecord{TransactionID: "TXN42", Method: "UPI Payment"}}
	o, orders, sessions, notify := testOrchestrator(carts, gw)

	outcome, err := o.Run(context.Background(), "u1", fullAddress())
	if err != nil {
		t.Fatal(err)
	}

	if outcome.Persisted != 2 || outcome.Failed != 0 {
		t.Fatalf("persisted/failed = %d/%d, want 2/0", outcome.Persisted, outcome.Failed)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders.created))
	}
	order := orders.created[0]
	if order.TotalAmount != 200 {
		t.Errorf("order total = %v, want 200", order.TotalAmount)
	}
	if order.TransactionID != "TXN42" {
		t.Errorf("order txn = %q", order.TransactionID)
	}
	if order.DeliveryCity != "Bengaluru" {
		t.Errorf("delivery snapshot missing: %+v", order)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions.created))
	}
	if got := sessions.created[0].Date.Format("2006-01-02 15:04"); got != "2026-09-05 10:30" {
		t.Errorf("session date = %q", got)
	}
	if !carts.cleared {
		t.Fatal("cart must clear after a successful checkout")
	}
	if notify.levels[len(notify.levels)-1] != "success" {
		t.Fatalf("expected success notification, got %v", notify.levels)
	}
	if outcome.Payment.Amount != 700 {
		t.Fatalf("charged %v, want grand total 700", outcome.Payment.Amount)
	}
}

func TestRunPartialFailureStillClearsCartAndWarns(t *testing.T) {
	c := models.EmptyCart()
	c.Products = []models.ProductLineItem{
		{ProductID: "p1", Name: "Oil", Price: 100, Quantity: 1},
		{ProductID: "p2", Name: "Tea", Price: 150, Quantity: 1},
	}
	carts := &fakeCarts{cart: c}
	gw := &fakeGateway{record: models.PaymentRecord{TransactionID: "TXN7", Method: "UPI Payment"}}
	o, orders, _, notify := testOrchestrator(carts, gw)
	orders.failAt[1] = true

	outcome, err := o.Run(context.Background(), "u1", fullAddress())
	if err != nil {
		t.Fatalf("partial persistence failure must not fail the run: %v", err)
	}

	if outcome.Persisted != 1 || outcome.Failed != 1 {
		t.Fatalf("persisted/failed = %d/%d, want 1/1", outcome.Persisted, outcome.Failed)
	}
	if !carts.cleared {
		t.Fatal("cart must clear even on partial failure, payment already happened")
	}

	last := notify.messages[len(notify.messages)-1]
	if notify.levels[len(notify.levels)-1] != "warning" {
		t.Fatalf("expected warning, got %v", notify.levels)
	}
	if !strings.Contains(last, "TXN7") || !strings.Contains(last, "1 of 2") {
		t.Fatalf("warning must reference the transaction and counts: %q", last)
	}
}

func TestRunInsufficientStockBlocksPayment(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{}
	o, _, _, notify := testOrchestrator(carts, gw)
	o.Stock = &fakeStock{available: map[string]int{"p1": 1}} // cart asks for 2

	outcome, err := o.Run(context.Background(), "u1", fullAddress())
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	if outcome.State != StateValidating {
		t.Fatalf("state = %v, want StateValidating", outcome.State)
	}
	if gw.calls != 0 {
		t.Fatal("payment must not start when stock is short")
	}
	if carts.cleared {
		t.Fatal("cart must survive a stock rejection")
	}
	last := notify.messages[len(notify.messages)-1]
	if !strings.Contains(last, "Only 1 left") {
		t.Fatalf("warning must state the remaining stock: %q", last)
	}
}

func TestRunStockCheckErrorStopsCheckout(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{}
	o, _, _, notify := testOrchestrator(carts, gw)
	o.Stock = &fakeStock{availErr: errors.New("read timeout")}

	outcome, err := o.Run(context.Background(), "u1", fullAddress())
	if err == nil {
		t.Fatal("expected the stock lookup error to surface")
	}
	if outcome.State != StateValidating {
		t.Fatalf("state = %v, want StateValidating", outcome.State)
	}
	if gw.calls != 0 {
		t.Fatal("payment must not start when stock cannot be verified")
	}
	if notify.levels[len(notify.levels)-1] != "error" {
		t.Fatalf("expected an error notification, got %v", notify.levels)
	}
}

func TestRunSuccessConsumesStock(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{record: models.PaymentRecord{TransactionID: "TXN11", Method: "UPI Payment"}}
	o, _, _, _ := testOrchestrator(carts, gw)
	stock := &fakeStock{available: map[string]int{"p1": 5}}
	o.Stock = stock

	if _, err := o.Run(context.Background(), "u1", fullAddress()); err != nil {
		t.Fatal(err)
	}
	if stock.consumed["p1"] != 2 {
		t.Fatalf("consumed %d of p1, want 2", stock.consumed["p1"])
	}
	if stock.available["p1"] != 3 {
		t.Fatalf("remaining stock = %d, want 3", stock.available["p1"])
	}
}

func TestRunRepeatCheckoutCannotOversell(t *testing.T) {
	carts := &fakeCarts{cart: mixedCart()}
	gw := &fakeGateway{record: models.PaymentRecord{TransactionID: "TXN12", Method: "UPI Payment"}}
	o, orders, _, _ := testOrchestrator(carts, gw)
	o.Stock = &fakeStock{available: map[string]int{"p1": 2}} // exactly one cart's worth

	if _, err := o.Run(context.Background(), "u1", fullAddress()); err != nil {
		t.Fatal(err)
	}

	// The same cart again: the first sale emptied the shelf.
	_, err := o.Run(context.Background(), "u1", fullAddress())
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("second checkout err = %v, want ErrInsufficientStock", err)
	}
	if gw.calls != 1 {
		t.Fatalf("gateway calls = %d, want 1", gw.calls)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders = %d, want 1", len(orders.created))
	}
}

func TestRunBadSessionLineItemCountsAsFailed(t *testing.T) {
	c := models.EmptyCart()
	c.Sessions = []models.SessionLineItem{
		{PractitionerID: "not-a-uuid", Date: "2026-09-05", Time: "10:30", Fee: 500},
	}
	carts := &fakeCarts{cart: c}
	gw := &fakeGateway{record: models.PaymentRecord{TransactionID: "TXN9"}}
	o, _, sessions, _ := testOrchestrator(carts, gw)

	outcome, err := o.Run(context.Background(), "u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Failed != 1 || outcome.Persisted != 0 {
		t.Fatalf("persisted/failed = %d/%d, want 0/1", outcome.Persisted, outcome.Failed)
	}
	if len(sessions.created) != 0 {
		t.Fatal("invalid line item must not reach the repo")
	}
}
