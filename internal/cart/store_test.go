package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellnexus_back_end/internal/models"
)

// fakePersistence records writes and published signals in order, so tests can
// assert the save happened before the broadcast.
type fakePersistence struct {
	data     map[string]string
	events   []string
	loadErr  error
	saveErr  error
	pubErr   error
	lastTTL  time.Duration
	lastData string
}

func newFakePersistence() *fakePersistence {
	return &fakePersistence{data: map[string]string{}}
}

func (f *fakePersistence) Load(_ context.Context, key string) (string, bool, error) {
	if f.loadErr != nil {
		return "", false, f.loadErr
	}
	data, ok := f.data[key]
	return data, ok, nil
}

func (f *fakePersistence) Save(_ context.Context, key, data string, ttl time.Duration) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.data[key] = data
	f.lastTTL = ttl
	f.lastData = data
	f.events = append(f.events, "save")
	return nil
}

func (f *fakePersistence) Publish(_ context.Context, channel, payload string) error {
	f.events = append(f.events, "publish:"+payload)
	return f.pubErr
}

func TestReadEmptyWhenNothingPersisted(t *testing.T) {
	s := newStore(newFakePersistence())

	cart := s.Read(context.Background(), "u1")

	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", cart)
	}
	if cart.Products == nil || cart.Sessions == nil {
		t.Fatal("empty cart must have non-nil slices")
	}
}

func TestReadMalformedBlobServesEmptyCart(t *testing.T) {
	p := newFakePersistence()
	p.data[Key("u1")] = `{"products": not json`
	s := newStore(p)

	cart := s.Read(context.Background(), "u1")

	if !cart.IsEmpty() {
		t.Fatalf("malformed blob should serve empty cart, got %+v", cart)
	}
}

func TestReadLoadErrorServesEmptyCart(t *testing.T) {
	p := newFakePersistence()
	p.loadErr = errors.New("connection refused")
	s := newStore(p)

	if cart := s.Read(context.Background(), "u1"); !cart.IsEmpty() {
		t.Fatalf("load error should serve empty cart, got %+v", cart)
	}
}

func TestReadIsIdempotent(t *testing.T) {
	p := newFakePersistence()
	s := newStore(p)

	item := models.ProductLineItem{ProductID: "p1", Name: "Ashwagandha", Price: 200, Quantity: 2}
	if _, err := s.AddProduct(context.Background(), "u1", item); err != nil {
		t.Fatal(err)
	}

	first := s.Read(context.Background(), "u1")
	second := s.Read(context.Background(), "u1")

	if len(first.Products) != 1 || len(second.Products) != 1 {
		t.Fatalf("reads disagree: %+v vs %+v", first, second)
	}
	if first.Products[0] != second.Products[0] {
		t.Fatalf("reads disagree: %+v vs %+v", first.Products[0], second.Products[0])
	}
}

func TestReadMigratesLegacyUnversionedBlob(t *testing.T) {
	p := newFakePersistence()
	p.data[Key("u1")] = `{"products":[{"id":"p1","name":"Oil","price":100,"quantity":2}],"sessions":null}`
	s := newStore(p)

	cart := s.Read(context.Background(), "u1")

	if cart.Version != models.CartVersion {
		t.Fatalf("version = %d, want %d", cart.Version, models.CartVersion)
	}
	if cart.Sessions == nil {
		t.Fatal("null sessions must decode to empty slice")
	}
	if len(cart.Products) != 1 || cart.Products[0].Quantity != 2 {
		t.Fatalf("legacy items lost: %+v", cart)
	}
}

func TestWriteSavesBeforeBroadcast(t *testing.T) {
	p := newFakePersistence()
	s := newStore(p)

	item := models.ProductLineItem{ProductID: "p1", Name: "Oil", Price: 100, Quantity: 1}
	if _, err := s.AddProduct(context.Background(), "u1", item); err != nil {
		t.Fatal(err)
	}

	if len(p.events) != 2 || p.events[0] != "save" || p.events[1] != "publish:updated" {
		t.Fatalf("event order = %v, want [save publish:updated]", p.events)
	}
}

func TestWriteSaveFailureSkipsBroadcast(t *testing.T) {
	p := newFakePersistence()
	p.saveErr = errors.New("down")
	s := newStore(p)

	item := models.ProductLineItem{ProductID: "p1", Price: 100}
	if _, err := s.AddProduct(context.Background(), "u1", item); err == nil {
		t.Fatal("expected save error")
	}
	for _, e := range p.events {
		if e != "save" {
			t.Fatalf("broadcast after failed save: %v", p.events)
		}
	}
}

func TestWritePublishFailureStillSucceeds(t *testing.T) {
	p := newFakePersistence()
	p.pubErr = errors.New("pubsub down")
	s := newStore(p)

	item := models.ProductLineItem{ProductID: "p1", Price: 100}
	if _, err := s.AddProduct(context.Background(), "u1", item); err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}
	if cart := s.Read(context.Background(), "u1"); len(cart.Products) != 1 {
		t.Fatalf("write did not land: %+v", cart)
	}
}

func TestClearBroadcastsCleared(t *testing.T) {
	p := newFakePersistence()
	s := newStore(p)

	if _, err := s.AddProduct(context.Background(), "u1", models.ProductLineItem{ProductID: "p1", Price: 50}); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(context.Background(), "u1"); err != nil {
		t.Fatal(err)
	}

	last := p.events[len(p.events)-1]
	if last != "publish:cleared" {
		t.Fatalf("last event = %q, want publish:cleared", last)
	}
	if cart := s.Read(context.Background(), "u1"); !cart.IsEmpty() {
		t.Fatalf("cart not empty after clear: %+v", cart)
	}
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	s := newStore(newFakePersistence())

	ch, cancel := s.Subscribe("u1")
	defer cancel()

	if _, err := s.AddProduct(context.Background(), "u1", models.ProductLineItem{ProductID: "p1", Price: 100}); err != nil {
		t.Fatal(err)
	}

	select {
	case cart := <-ch:
		if len(cart.Products) != 1 {
			t.Fatalf("snapshot = %+v", cart)
		}
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}

func TestCancelIsSymmetricWithSubscribe(t *testing.T) {
	s := newStore(newFakePersistence())

	_, cancel1 := s.Subscribe("u1")
	_, cancel2 := s.Subscribe("u1")
	if n := s.bus.Subscribers("u1"); n != 2 {
		t.Fatalf("subscribers = %d, want 2", n)
	}

	cancel1()
	cancel1() // double cancel is safe
	if n := s.bus.Subscribers("u1"); n != 1 {
		t.Fatalf("subscribers = %d, want 1", n)
	}

	cancel2()
	if n := s.bus.Subscribers("u1"); n != 0 {
		t.Fatalf("subscribers = %d, want 0", n)
	}
}

func TestSlowSubscriberNeverBlocksWriter(t *testing.T) {
	s := newStore(newFakePersistence())

	// Never drained.
	_, cancel := s.Subscribe("u1")
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 32; i++ {
			s.AddProduct(context.Background(), "u1", models.ProductLineItem{ProductID: "p1", Price: 1})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("writer blocked on a slow subscriber")
	}
}
