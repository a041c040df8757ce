package payment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func testGateway(at time.Time) *UPIGateway {
	return &UPIGateway{
		VPA:   DefaultVPA,
		Delay: time.Millisecond,
		Now:   func() time.Time { return at },
	}
}

func TestInitiateSynthesizesTransaction(t *testing.T) {
	at := time.UnixMilli(1757000000000)
	g := testGateway(at)

	rec, err := g.Initiate(context.Background(), 700, nil)
	if err != nil {
		t.Fatal(err)
	}

	if rec.OrderID != "ORD1757000000000" {
		t.Errorf("order id = %q", rec.OrderID)
	}
	if rec.TransactionID != "TXN1757000000000" {
		t.Errorf("transaction id = %q", rec.TransactionID)
	}
	if rec.Method != "UPI Payment" {
		t.Errorf("method = %q", rec.Method)
	}
	if rec.UpiID != "wellnexus@upi" {
		t.Errorf("upi id = %q", rec.UpiID)
	}
	if rec.Amount != 700 {
		t.Errorf("amount = %v", rec.Amount)
	}
}

func TestInitiateCancelledBeforeConfirmation(t *testing.T) {
	g := testGateway(time.Now())
	g.Delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := g.Initiate(ctx, 500, nil)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
}

func TestInitiateDeadlineIsNotACancellation(t *testing.T) {
	g := testGateway(time.Now())
	g.Delay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := g.Initiate(ctx, 500, nil)
	if err == nil || errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want a timeout distinct from ErrCancelled", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want wrapped DeadlineExceeded", err)
	}
}

func TestQRCodeEmbedsPaymentLink(t *testing.T) {
	g := testGateway(time.Now())

	dataURL, err := g.QRCode(249.50, "ORD123")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(dataURL, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %.40s", dataURL)
	}
}
