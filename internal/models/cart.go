package models

// CartVersion is the persisted cart schema version. Blobs written before
// versioning carry no version field and are migrated on read.
const CartVersion = 1

// Cart holds a user's pending purchase intent: wellness products and
// therapy-session bookings. Both slices are always non-nil; an empty cart
// is {products: [], sessions: []}, never null.
type Cart struct {
	Version  int               `json:"version"`
	Products []ProductLineItem `json:"products"`
	Sessions []SessionLineItem `json:"sessions"`
}

type ProductLineItem struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// SessionLineItem has no uniqueness constraint: the same practitioner may be
// queued for several dates.
type SessionLineItem struct {
	PractitionerID string  `json:"practitionerId"`
	Practitioner   string  `json:"practitioner"`
	Specialization string  `json:"specialization"`
	Date           string  `json:"date"` // calendar date, 2006-01-02
	Time           string  `json:"time"` // canonical slot time, 15:04
	Fee            float64 `json:"fee"`
}

func EmptyCart() Cart {
	return Cart{
		Version:  CartVersion,
		Products: []ProductLineItem{},
		Sessions: []SessionLineItem{},
	}
}

// Normalize repairs a decoded cart: nil slices become empty ones, quantities
// below 1 are floored, and the version is stamped. Legacy unversioned blobs
// pass through here on read.
func (c *Cart) Normalize() {
	if c.Products == nil {
		c.Products = []ProductLineItem{}
	}
	if c.Sessions == nil {
		c.Sessions = []SessionLineItem{}
	}
	for i := range c.Products {
		if c.Products[i].Quantity < 1 {
			c.Products[i].Quantity = 1
		}
	}
	c.Version = CartVersion
}

func (c Cart) IsEmpty() bool {
	return len(c.Products) == 0 && len(c.Sessions) == 0
}

func (c Cart) ProductSubtotal() float64 {
	var total float64
	for _, item := range c.Products {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func (c Cart) SessionSubtotal() float64 {
	var total float64
	for _, item := range c.Sessions {
		total += item.Fee
	}
	return total
}

// GrandTotal is always recomputed from line items, never cached.
func (c Cart) GrandTotal() float64 {
	return c.ProductSubtotal() + c.SessionSubtotal()
}
