package cart

import (
	"context"
	"testing"

	"wellnexus_back_end/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return newStore(newFakePersistence())
}

func TestAddProductMergesByID(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	item := models.ProductLineItem{ProductID: "p1", Name: "Herbal Tea", Price: 150, Quantity: 1}
	if _, err := s.AddProduct(ctx, "u1", item); err != nil {
		t.Fatal(err)
	}
	cart, err := s.AddProduct(ctx, "u1", item)
	if err != nil {
		t.Fatal(err)
	}

	if len(cart.Products) != 1 {
		t.Fatalf("len(products) = %d, want 1", len(cart.Products))
	}
	if cart.Products[0].Quantity != 2 {
		t.Fatalf("quantity = %d, want 2", cart.Products[0].Quantity)
	}
}

func TestAddProductFloorsQuantity(t *testing.T) {
	s := testStore(t)

	cart, err := s.AddProduct(context.Background(), "u1",
		models.ProductLineItem{ProductID: "p1", Price: 100, Quantity: 0})
	if err != nil {
		t.Fatal(err)
	}
	if cart.Products[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", cart.Products[0].Quantity)
	}
}

func TestUpdateQuantityNeverDropsBelowOne(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.AddProduct(ctx, "u1", models.ProductLineItem{ProductID: "p1", Price: 100, Quantity: 2})

	cart, err := s.UpdateQuantity(ctx, "u1", 0, -5)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Products[0].Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", cart.Products[0].Quantity)
	}
}

func TestRemoveProductPreservesOrder(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for _, id := range []string{"p1", "p2", "p3"} {
		s.AddProduct(ctx, "u1", models.ProductLineItem{ProductID: id, Price: 10})
	}

	cart, err := s.RemoveProduct(ctx, "u1", 1)
	if err != nil {
		t.Fatal(err)
	}

	if len(cart.Products) != 2 {
		t.Fatalf("len = %d, want 2", len(cart.Products))
	}
	if cart.Products[0].ProductID != "p1" || cart.Products[1].ProductID != "p3" {
		t.Fatalf("order broken: %+v", cart.Products)
	}
}

func TestRemoveOutOfBoundsIsNoOp(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.AddProduct(ctx, "u1", models.ProductLineItem{ProductID: "p1", Price: 10})

	for _, index := range []int{-1, 1, 99} {
		cart, err := s.RemoveProduct(ctx, "u1", index)
		if err != nil {
			t.Fatalf("index %d: %v", index, err)
		}
		if len(cart.Products) != 1 {
			t.Fatalf("index %d mutated cart: %+v", index, cart.Products)
		}
	}
	if cart, err := s.RemoveSession(ctx, "u1", 0); err != nil || len(cart.Products) != 1 {
		t.Fatalf("session removal on empty sessions mutated cart: %+v %v", cart, err)
	}
}

func TestAddSessionAlwaysAppends(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	item := models.SessionLineItem{
		PractitionerID: "pr1", Practitioner: "Dr. Meera",
		Date: "2026-09-05", Time: "10:30", Fee: 500,
	}
	s.AddSession(ctx, "u1", item)
	item.Date = "2026-09-06"
	cart, err := s.AddSession(ctx, "u1", item)
	if err != nil {
		t.Fatal(err)
	}

	if len(cart.Sessions) != 2 {
		t.Fatalf("len(sessions) = %d, want 2", len(cart.Sessions))
	}
}

func TestGrandTotalMixedCart(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// 100 + 50x2 in products plus a 500 consultation.
	s.AddProduct(ctx, "u1", models.ProductLineItem{ProductID: "p1", Name: "Face Pack", Price: 100, Quantity: 1})
	s.AddProduct(ctx, "u1", models.ProductLineItem{ProductID: "p2", Name: "Herbal Oil", Price: 50, Quantity: 2})
	cart, err := s.AddSession(ctx, "u1", models.SessionLineItem{PractitionerID: "pr1", Fee: 500})
	if err != nil {
		t.Fatal(err)
	}

	if got := cart.GrandTotal(); got != 700 {
		t.Fatalf("grand total = %v, want 700", got)
	}
	if got := cart.ProductSubtotal(); got != 200 {
		t.Fatalf("product subtotal = %v, want 200", got)
	}
	if got := cart.SessionSubtotal(); got != 500 {
		t.Fatalf("session subtotal = %v, want 500", got)
	}

	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatal(err)
	}
	if got := s.Read(ctx, "u1").GrandTotal(); got != 0 {
		t.Fatalf("grand total after clear = %v, want 0", got)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	s.AddProduct(ctx, "u1", models.ProductLineItem{ProductID: "p1", Price: 100})

	if cart := s.Read(ctx, "u2"); !cart.IsEmpty() {
		t.Fatalf("u2 sees u1's cart: %+v", cart)
	}
}
