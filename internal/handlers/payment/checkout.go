package payment

import (
	"errors"
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/checkout"
	"wellnexus_back_end/internal/models"
	"wellnexus_back_end/internal/payment"
	"wellnexus_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

var Checkout *checkout.Orchestrator

// UseOrchestrator wires the checkout flow at startup.
func UseOrchestrator(o *checkout.Orchestrator) { Checkout = o }

// 💳 POST /api/checkout
//
// Body: { "deliveryAddress": {...} } with the address optional for
// session-only carts.
func RunCheckout(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	var input struct {
		DeliveryAddress *models.DeliveryAddress `json:"deliveryAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	// Snapshot before the run: the orchestrator clears the cart on success
	// and the receipt still needs the line items.
	snapshot := Checkout.Carts.Read(c.Request.Context(), userID)

	outcome, err := Checkout.Run(c.Request.Context(), userID, input.DeliveryAddress)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAuthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, checkout.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough stock for an item in your cart"})
		case errors.Is(err, checkout.ErrAddressIncomplete):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":          "Delivery address is incomplete",
				"missing_fields": outcome.MissingFields,
			})
		case errors.Is(err, payment.ErrCancelled):
			c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
		default:
			log.Println("❌ Checkout failed:", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment failed, please try again"})
		}
		return
	}

	if email != "" {
		go sendReceipt(email, outcome.Payment, snapshot)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "complete",
		"payment":   outcome.Payment,
		"persisted": outcome.Persisted,
		"failed":    outcome.Failed,
	})
}

// sendReceipt mails the receipt with a best-effort PDF attachment. Runs off
// the request path.
func sendReceipt(email string, record models.PaymentRecord, cart models.Cart) {
	orders := make([]models.Order, 0, len(cart.Products))
	for _, item := range cart.Products {
		orders = append(orders, models.Order{
			ProductName: item.Name,
			Quantity:    item.Quantity,
			TotalAmount: item.Price * float64(item.Quantity),
			OrderDate:   time.Now(),
		})
	}

	qr := ""
	if UPI != nil && record.UpiID != "" {
		if encoded, err := UPI.QRCode(record.Amount, record.OrderID); err == nil {
			qr = encoded
		}
	}

	var pdf []byte
	rendered, err := utils.RenderReceiptPDF(record.OrderID, qr)
	if err != nil {
		log.Println("⚠️ Receipt PDF render failed:", err)
	} else {
		pdf = rendered
	}

	html := utils.GenerateReceiptHTML(record, orders, cart.Sessions)
	if err := utils.SendConfirmationEmail(email, "Your WellNexus receipt", html, pdf); err != nil {
		log.Println("❌ Receipt mail failed:", err)
	}
}
