package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"wellnexus_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

// TTL matches the retention of abandoned carts.
const cartTTL = 30 * 24 * time.Hour

// Persistence is the byte-level backing of the cart store. The production
// implementation is Redis; tests inject an in-memory one. Publish carries the
// change signal to other connected clients of the same user.
type Persistence interface {
	Load(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, data string, ttl time.Duration) error
	Publish(ctx context.Context, channel, payload string) error
}

type redisPersistence struct {
	rdb *redis.Client
}

func (r redisPersistence) Load(ctx context.Context, key string) (string, bool, error) {
	data, err := r.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

func (r redisPersistence) Save(ctx context.Context, key, data string, ttl time.Duration) error {
	return r.rdb.Set(ctx, key, data, ttl).Err()
}

func (r redisPersistence) Publish(ctx context.Context, channel, payload string) error {
	return r.rdb.Publish(ctx, channel, payload).Err()
}

// Store is the single owner of persisted cart state. No component reads the
// underlying bytes without going through Read, and every Write broadcasts a
// change notification after the persisted write completes, never before.
type Store struct {
	p   Persistence
	bus *Bus
}

func NewStore(rdb *redis.Client) *Store {
	return newStore(redisPersistence{rdb: rdb})
}

func newStore(p Persistence) *Store {
	return &Store{p: p, bus: NewBus()}
}

func Key(userID string) string {
	return "cart:" + userID
}

// Read returns the user's cart, or the empty cart when nothing is persisted
// or the persisted blob is malformed. It never fails toward the caller.
func (s *Store) Read(ctx context.Context, userID string) models.Cart {
	data, found, err := s.p.Load(ctx, Key(userID))
	if err != nil {
		log.Printf("⚠️ Cart read failed for %s, serving empty cart: %v", userID, err)
		return models.EmptyCart()
	}
	if !found || data == "" {
		return models.EmptyCart()
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		log.Printf("⚠️ Malformed cart for %s, serving empty cart: %v", userID, err)
		return models.EmptyCart()
	}

	// Unversioned blobs predate the schema version field.
	if cart.Version == 0 {
		log.Printf("🔁 Migrating legacy cart blob for %s", userID)
	}
	cart.Normalize()
	return cart
}

// Write persists the full cart and then broadcasts. The ordering is strict:
// a subscriber re-reading right after the signal must see the new state.
func (s *Store) Write(ctx context.Context, userID string, cart models.Cart) error {
	cart.Normalize()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := s.p.Save(ctx, Key(userID), string(data), cartTTL); err != nil {
		return err
	}

	payload := "updated"
	if cart.IsEmpty() {
		payload = "cleared"
	}

	s.bus.Publish(userID, cart)
	if err := s.p.Publish(ctx, Key(userID), payload); err != nil {
		// Broadcast is fire-and-forget: the write already landed.
		log.Printf("⚠️ Cart broadcast failed for %s: %v", userID, err)
	}
	return nil
}

// Subscribe registers an in-process listener for the user's cart changes.
// The returned cancel must be called when the listener unmounts.
func (s *Store) Subscribe(userID string) (<-chan models.Cart, func()) {
	return s.bus.Subscribe(userID)
}
