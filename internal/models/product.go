package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Product struct {
	ID          gocql.UUID `json:"id" db:"product_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Price       float64    `json:"price" db:"price"`
	Stock       int        `json:"stock" db:"stock"`
	ImageURLs   []string   `json:"image_urls" db:"image_urls"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// LowStockThreshold triggers a warning once stock on hand drops to it.
const LowStockThreshold = 5

type StockMovement struct {
	ID        gocql.UUID `json:"id"`
	ProductID gocql.UUID `json:"product_id"`
	Type      string     `json:"type"` // "restock", "adjustment", "sale"
	Quantity  int        `json:"quantity"`
	PrevStock int        `json:"prev_stock"`
	NewStock  int        `json:"new_stock"`
	Reason    string     `json:"reason"`
	UserID    string     `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
}
