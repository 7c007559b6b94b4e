// utils/email.go
package utils

import (
	"fmt"
	"log"
	"strings"

	"food-delivery/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional email through SendGrid. Without an API key it only logs.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService(apiKey, sender string) *EmailService {
	es := &EmailService{sender: sender}
	if apiKey != "" {
		es.client = sendgrid.NewSendClient(apiKey)
	}
	return es
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es == nil || es.client == nil {
		log.Printf("email to %s not sent (no SendGrid key): %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Food Delivery", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, stripTags(htmlContent), htmlContent)

	response, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation email to the customer
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation"

	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "%d x %s ($%.2f)<br>", item.Quantity, item.Name, item.Price)
	}
	discount := ""
	if order.Discount > 0 {
		discount = fmt.Sprintf("Discount (%s): <strong>-$%.2f</strong><br>", order.AppliedCouponCode, order.Discount)
	}
	htmlContent := fmt.Sprintf(
		"<strong>Thanks for your order!</strong><br><br>Order ID: %s<br><br>%s<br>Subtotal: $%.2f<br>Delivery fee: $%.2f<br>%sTotal: <strong>$%.2f</strong>",
		order.ID.Hex(),
		items.String(),
		order.Subtotal,
		order.DeliveryFee,
		discount,
		order.Total,
	)

	return es.SendEmail(toEmail, subject, htmlContent)
}

func stripTags(html string) string {
	replacer := strings.NewReplacer("<br>", "\n", "<strong>", "", "</strong>", "")
	return replacer.Replace(html)
}
