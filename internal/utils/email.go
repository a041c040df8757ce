package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"wellnexus_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

func SendConfirmationEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("wellnexus_receipt.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending email to", to)
	return client.DialAndSend(msg)
}

// GenerateReceiptHTML renders the checkout receipt mail body.
func GenerateReceiptHTML(record models.PaymentRecord, orders []models.Order, sessions []models.SessionLineItem) string {
	rowsHTML := ""
	for _, o := range orders {
		rowsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>₹%.2f</td>
			</tr>`, o.ProductName, o.Quantity, o.TotalAmount)
	}
	for _, s := range sessions {
		rowsHTML += fmt.Sprintf(`
			<tr>
				<td>%s session with %s, %s at %s</td>
				<td>1</td>
				<td>₹%.2f</td>
			</tr>`, s.Specialization, s.Practitioner, s.Date, s.Time, s.Fee)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8">
	<title>Payment confirmation</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f0fdf4; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #14532d;">Payment successful 🌿</h2>
		<p>Thank you for your order with WellNexus.</p>

		<h3>Receipt</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #dcfce7;">
					<th style="padding: 10px; text-align: left;">Item</th>
					<th style="padding: 10px; text-align: left;">Qty</th>
					<th style="padding: 10px; text-align: left;">Amount</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p><strong>Total paid:</strong> ₹%.2f</p>
		<p><strong>Order ID:</strong> %s<br>
		   <strong>Transaction ID:</strong> %s<br>
		   <strong>Method:</strong> %s</p>
	</div>
</body>
</html>`, rowsHTML, record.Amount, record.OrderID, record.TransactionID, record.Method)
}

// GenerateBookingConfirmationHTML renders the single-session booking mail.
func GenerateBookingConfirmationHTML(practitionerName, specialization string, when string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Booking confirmed</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f0fdf4; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #14532d;">Your session is booked 🌿</h2>
		<p>Your %s session with <strong>%s</strong> is confirmed for <strong>%s</strong>.</p>
		<p>You can review or cancel the booking from your dashboard.</p>
	</div>
</body>
</html>`, specialization, practitionerName, when)
}
