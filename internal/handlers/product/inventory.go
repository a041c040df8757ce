package product

import (
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// 📦 PUT /api/products/:id/stock  (admin)
//
// type "restock" adds quantity; "adjustment" sets the absolute level.
// Quantity deliberately has no required binding: an adjustment to zero
// is a valid way to take a product off the shelf.
func UpdateStock(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var input struct {
		Type     string `json:"type" binding:"required"`
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	switch input.Type {
	case "restock":
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Restock quantity must be positive"})
			return
		}
	case "adjustment":
		if input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be restock or adjustment"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var prevStock int
	if err := session.Query(`SELECT stock FROM products WHERE id = ?`, id).Scan(&prevStock); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	newStock := input.Quantity
	if input.Type == "restock" {
		newStock = prevStock + input.Quantity
	}

	if err := session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE id = ?`,
		newStock, time.Now(), id).Exec(); err != nil {
		log.Println("❌ Stock update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stock update failed"})
		return
	}

	movement := models.StockMovement{
		ID:        gocql.TimeUUID(),
		ProductID: id,
		Type:      input.Type,
		Quantity:  input.Quantity,
		PrevStock: prevStock,
		NewStock:  newStock,
		Reason:    input.Reason,
		UserID:    c.GetString("user_id"),
		CreatedAt: time.Now(),
	}
	if err := session.Query(`INSERT INTO stock_movements (id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at)
	                         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.PrevStock, movement.NewStock, movement.Reason, movement.UserID, movement.CreatedAt,
	).Exec(); err != nil {
		// The stock change already landed; the audit row is best effort.
		log.Println("⚠️ Stock movement insert failed:", err)
	}

	if newStock <= models.LowStockThreshold {
		log.Printf("⚠️ Low stock: product %s down to %d", id, newStock)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Stock updated",
		"prev_stock": prevStock,
		"new_stock":  newStock,
	})
}

// GET /api/products/:id/stock-movements  (admin)
func GetStockMovements(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT id, product_id, type, quantity, prev_stock, new_stock, reason, user_id, created_at
	                       FROM stock_movements WHERE product_id = ? ALLOW FILTERING`, id).Iter()

	movements := []models.StockMovement{}
	var m models.StockMovement
	for iter.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PrevStock, &m.NewStock, &m.Reason, &m.UserID, &m.CreatedAt) {
		movements = append(movements, m)
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Stock movement list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements})
}
