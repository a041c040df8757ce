package user

import (
	"net/http"

	"wellnexus_back_end/internal/cart"
	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// Carts is the injected cart store; wired from main so handlers and tests
// never reach into ambient storage directly.
var Carts *cart.Store

func UseCartStore(s *cart.Store) {
	Carts = s
}

func cartResponse(c models.Cart) gin.H {
	return gin.H{
		"products": c.Products,
		"sessions": c.Sessions,
		"total":    c.GrandTotal(),
		"count":    len(c.Products) + len(c.Sessions),
	}
}

// GetCart returns the user's cart with recomputed totals.
func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(Carts.Read(c.Request.Context(), userID)))
}

// 🟢 POST /api/cart/products
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		ProductID string `json:"productId" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	productID, err := gocql.ParseUUID(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	// Price and name come from the catalog, never from the client.
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var name, category string
	var price float64
	var stock int
	if err := session.Query(`SELECT name, category, price, stock FROM products WHERE product_id = ?`,
		productID).Scan(&name, &category, &price, &stock); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if stock < input.Quantity {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Insufficient stock",
			"available": stock,
			"requested": input.Quantity,
		})
		return
	}

	updated, err := Carts.AddProduct(c.Request.Context(), userID, models.ProductLineItem{
		ProductID: input.ProductID,
		Name:      name,
		Category:  category,
		Price:     price,
		Quantity:  input.Quantity,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart update failed"})
		return
	}

	resp := cartResponse(updated)
	resp["message"] = "Product added to cart"
	c.JSON(http.StatusOK, resp)
}

// 🟢 POST /api/cart/sessions
func AddSessionToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		PractitionerID string `json:"practitionerId" binding:"required"`
		Date           string `json:"date" binding:"required"` // 2006-01-02
		Time           string `json:"time" binding:"required"` // 15:04
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	practitionerID, err := gocql.ParseUUID(input.PractitionerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid practitioner id"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var profile models.PractitionerProfile
	if err := session.Query(`SELECT practitioner_id, name, specialization, consultation_fee, verified
	                         FROM practitioner_profiles WHERE practitioner_id = ?`,
		practitionerID).Scan(&profile.ID, &profile.Name, &profile.Specialization,
		&profile.ConsultationFee, &profile.Verified); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Practitioner not found"})
		return
	}
	if !profile.Verified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Practitioner is not verified yet"})
		return
	}

	updated, err := Carts.AddSession(c.Request.Context(), userID, models.SessionLineItem{
		PractitionerID: input.PractitionerID,
		Practitioner:   profile.Name,
		Specialization: profile.Specialization,
		Date:           input.Date,
		Time:           input.Time,
		Fee:            profile.Fee(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart update failed"})
		return
	}

	resp := cartResponse(updated)
	resp["message"] = "Session added to cart"
	c.JSON(http.StatusOK, resp)
}

// ❌ DELETE /api/cart/products/:index
func RemoveFromCart(c *gin.Context) {
	mutateByIndex(c, Carts.RemoveProduct, "Product removed from cart")
}

// ❌ DELETE /api/cart/sessions/:index
func RemoveSessionFromCart(c *gin.Context) {
	mutateByIndex(c, Carts.RemoveSession, "Session removed from cart")
}

// 🔁 PUT /api/cart/products/:index/quantity
func UpdateQuantity(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	index, ok := indexParam(c)
	if !ok {
		return
	}

	updated, err := Carts.UpdateQuantity(c.Request.Context(), userID, index, input.Delta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart update failed"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(updated))
}

// 🧹 DELETE /api/cart
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := Carts.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart clear failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
