package models

import "strings"

// DeliveryAddress is collected only when a checkout contains product line
// items. It lives for the duration of one checkout flow and is discarded
// after the receipt is shown.
type DeliveryAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"` // optional
	Pincode string `json:"pincode"`
}

// MissingFields returns the required fields that are blank.
func (a *DeliveryAddress) MissingFields() []string {
	var missing []string
	if a == nil {
		return []string{"name", "phone", "email", "address", "city", "pincode"}
	}
	required := []struct{ name, value string }{
		{"name", a.Name},
		{"phone", a.Phone},
		{"email", a.Email},
		{"address", a.Address},
		{"city", a.City},
		{"pincode", a.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// PaymentRecord is produced by the payment gateway on confirmation. It feeds
// the receipt and the per-line-item order rows and is not retained after the
// checkout completes.
type PaymentRecord struct {
	Amount        float64          `json:"amount"`
	OrderID       string           `json:"orderId"`
	TransactionID string           `json:"transactionId"`
	Method        string           `json:"method"`
	UpiID         string           `json:"upiId,omitempty"`
	Delivery      *DeliveryAddress `json:"deliveryAddress,omitempty"`
}
