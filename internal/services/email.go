package services

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"freshsip_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendOrderConfirmation emails the customer a summary of their freshly placed
// order. Does nothing when SMTP is not configured; failures are logged, never
// surfaced to the order flow.
func SendOrderConfirmation(order models.Order) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@freshsip.app"
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		log.Println("⚠️ Invalid SMTP_FROM address:", err)
		return
	}
	if err := msg.To(order.Email); err != nil {
		log.Println("⚠️ Invalid recipient address:", err)
		return
	}
	msg.Subject(fmt.Sprintf("Your FreshSip order %s is confirmed", order.OrderID))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	port := 587
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			port = n
		}
	}

	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Println("⚠️ SMTP client setup failed:", err)
		return
	}

	log.Println("📤 Sending order confirmation to", order.Email)
	if err := client.DialAndSend(msg); err != nil {
		log.Println("⚠️ Order confirmation email failed:", err)
	}
}

func orderConfirmationHTML(order models.Order) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Order confirmation</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thanks for your order, %s!</h2>
		<p>Your order <strong>%s</strong> has been received and is now <strong>%s</strong>.</p>
		<table style="width: 100%%; border-collapse: collapse;">
			<tr><td>Product</td><td>%s</td></tr>
			<tr><td>Quantity</td><td>%d</td></tr>
			<tr><td>Total</td><td>%.2f</td></tr>
			<tr><td>Delivery address</td><td>%s</td></tr>
		</table>
		<p>You can track your order at any time with your email address.</p>
	</div>
</body>
</html>`, order.Name, order.OrderID, order.Status, order.Product, order.Quantity, order.TotalPrice, order.Address)
}
