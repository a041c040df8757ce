package user

import (
	"log"
	"net/http"

	"wellnexus_back_end/internal/database"
	"wellnexus_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const orderColumns = `id, user_id, product_id, product_name, quantity, total_amount, order_date, status,
	delivery_name, delivery_phone, delivery_email, delivery_address, delivery_city, delivery_state, delivery_pincode,
	transaction_id, payment_method`

// GET /api/orders/my
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	iter := session.Query(`SELECT `+orderColumns+` FROM orders
	                       WHERE user_id = ? ALLOW FILTERING`, userID).Iter()

	orders := []models.Order{}
	var o models.Order
	for scanOrder(iter, &o) {
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		log.Println("❌ Order list failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GET /api/orders/:id
func GetOrderByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	session, err := database.GetBookingsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database connection failed"})
		return
	}

	var o models.Order
	if err := session.Query(`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id).Scan(
		&o.ID, &o.UserID, &o.ProductID, &o.ProductName, &o.Quantity, &o.TotalAmount,
		&o.OrderDate, &o.Status,
		&o.DeliveryName, &o.DeliveryPhone, &o.DeliveryEmail, &o.DeliveryAddress,
		&o.DeliveryCity, &o.DeliveryState, &o.DeliveryPincode,
		&o.TransactionID, &o.PaymentMethod); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if o.UserID != c.GetString("user_id") && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	c.JSON(http.StatusOK, o)
}

func scanOrder(iter *gocql.Iter, o *models.Order) bool {
	return iter.Scan(&o.ID, &o.UserID, &o.ProductID, &o.ProductName, &o.Quantity, &o.TotalAmount,
		&o.OrderDate, &o.Status,
		&o.DeliveryName, &o.DeliveryPhone, &o.DeliveryEmail, &o.DeliveryAddress,
		&o.DeliveryCity, &o.DeliveryState, &o.DeliveryPincode,
		&o.TransactionID, &o.PaymentMethod)
}
