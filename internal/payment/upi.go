package payment

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"time"

	"wellnexus_back_end/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

const DefaultVPA = "wellnexus@upi"

// UPIGateway simulates the UPI confirmation flow: a fixed processing delay,
// then a synthesized transaction. The clock is injectable so tests get
// deterministic ids.
type UPIGateway struct {
	VPA   string
	Delay time.Duration
	Now   func() time.Time
}

func NewUPIGateway() *UPIGateway {
	return &UPIGateway{
		VPA:   DefaultVPA,
		Delay: 1500 * time.Millisecond,
		Now:   time.Now,
	}
}

func (g *UPIGateway) Initiate(ctx context.Context, amount float64, addr *models.DeliveryAddress) (models.PaymentRecord, error) {
	select {
	case <-time.After(g.Delay):
	case <-ctx.Done():
		// Dismissal before confirmation leaves the cart untouched; a
		// deadline means the gateway never confirmed.
		if ctx.Err() == context.DeadlineExceeded {
			return models.PaymentRecord{}, fmt.Errorf("payment timed out: %w", ctx.Err())
		}
		return models.PaymentRecord{}, ErrCancelled
	}

	ms := g.Now().UnixMilli()
	rec := models.PaymentRecord{
		Amount:        amount,
		OrderID:       fmt.Sprintf("ORD%d", ms),
		TransactionID: fmt.Sprintf("TXN%d", ms),
		Method:        "UPI Payment",
		UpiID:         g.VPA,
		Delivery:      addr,
	}
	return rec, nil
}

// QRCode renders a upi:// pay link as a base64 PNG ready for an <img src>.
func (g *UPIGateway) QRCode(amount float64, reference string) (string, error) {
	q := url.Values{}
	q.Set("pa", g.VPA)
	q.Set("pn", "WellNexus")
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	q.Set("tr", reference)

	png, err := qrcode.Encode("upi://pay?"+q.Encode(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
