package payment

import (
	"log"
	"net/http"

	upigw "wellnexus_back_end/internal/payment"

	"github.com/gin-gonic/gin"
)

var UPI *upigw.UPIGateway

// UseUPIGateway wires the UPI simulator at startup.
func UseUPIGateway(g *upigw.UPIGateway) { UPI = g }

// 📲 GET /api/payments/qr?amount=700&reference=ORD123
//
// Returns the UPI deep link QR as a base64 data URL, rendered client side.
func GetPaymentQR(c *gin.Context) {
	var input struct {
		Amount    float64 `form:"amount" binding:"required"`
		Reference string  `form:"reference"`
	}
	if err := c.ShouldBindQuery(&input); err != nil || input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	dataURL, err := UPI.QRCode(input.Amount, input.Reference)
	if err != nil {
		log.Println("❌ QR generation failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "QR generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"qr":     dataURL,
		"vpa":    UPI.VPA,
		"amount": input.Amount,
	})
}
