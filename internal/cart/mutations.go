package cart

import (
	"context"

	"wellnexus_back_end/internal/models"
)

// Every mutation is a read-modify-write against the store followed by the
// write's broadcast. All of them are synchronous with respect to the
// persisted state.

// AddProduct merges by product id: an already-present product gets its
// quantity incremented instead of a duplicate line item.
func (s *Store) AddProduct(ctx context.Context, userID string, item models.ProductLineItem) (models.Cart, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	cart := s.Read(ctx, userID)

	found := false
	for i := range cart.Products {
		if cart.Products[i].ProductID == item.ProductID {
			cart.Products[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart.Products = append(cart.Products, item)
	}

	return cart, s.Write(ctx, userID, cart)
}

// RemoveProduct deletes the line item at index, preserving the order of the
// remainder. An out-of-bounds index is a silent no-op.
func (s *Store) RemoveProduct(ctx context.Context, userID string, index int) (models.Cart, error) {
	cart := s.Read(ctx, userID)
	if index < 0 || index >= len(cart.Products) {
		return cart, nil
	}
	cart.Products = append(cart.Products[:index], cart.Products[index+1:]...)
	return cart, s.Write(ctx, userID, cart)
}

// UpdateQuantity applies a delta with a floor of 1: removal goes through
// RemoveProduct, never through a negative delta.
func (s *Store) UpdateQuantity(ctx context.Context, userID string, index, delta int) (models.Cart, error) {
	cart := s.Read(ctx, userID)
	if index < 0 || index >= len(cart.Products) {
		return cart, nil
	}
	q := cart.Products[index].Quantity + delta
	if q < 1 {
		q = 1
	}
	cart.Products[index].Quantity = q
	return cart, s.Write(ctx, userID, cart)
}

// AddSession always appends: the same practitioner may be queued for several
// dates.
func (s *Store) AddSession(ctx context.Context, userID string, item models.SessionLineItem) (models.Cart, error) {
	cart := s.Read(ctx, userID)
	cart.Sessions = append(cart.Sessions, item)
	return cart, s.Write(ctx, userID, cart)
}

// RemoveSession has the same bounds contract as RemoveProduct.
func (s *Store) RemoveSession(ctx context.Context, userID string, index int) (models.Cart, error) {
	cart := s.Read(ctx, userID)
	if index < 0 || index >= len(cart.Sessions) {
		return cart, nil
	}
	cart.Sessions = append(cart.Sessions[:index], cart.Sessions[index+1:]...)
	return cart, s.Write(ctx, userID, cart)
}

// Clear resets the cart to empty. Used only after a completed checkout.
func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.Write(ctx, userID, models.EmptyCart())
}
