// Package mailer sends the new-order notification to the business inbox.
// Sending is best-effort: checkout never fails because the relay did, and a
// mailto: link is produced as the manual fallback.
package mailer

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/shyakx/akazuba-florist/internal/domain"
)

// OrderEmail carries everything the notification template needs
type OrderEmail struct {
	Order      *domain.Order
	Items      []*domain.OrderItem
	AdminEmail string
}

// Mailer delivers order notifications
type Mailer interface {
	SendOrderNotification(ctx context.Context, email OrderEmail) error
}

// FormatRWF renders an amount the way the shop writes prices, e.g. "RWF 15,000"
func FormatRWF(amount float64) string {
	n := int64(amount + 0.5)
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var parts []string
		for len(s) > 3 {
			parts = append([]string{s[len(s)-3:]}, parts...)
			s = s[:len(s)-3]
		}
		parts = append([]string{s}, parts...)
		s = strings.Join(parts, ",")
	}
	return "RWF " + s
}

// FallbackMailtoLink builds the mailto: link used when the relay call fails,
// carrying the same order summary in the body.
func FallbackMailtoLink(email OrderEmail) string {
	subject := fmt.Sprintf("New Order #%s - AKAZUBA FLORIST", email.Order.OrderNumber)

	var b strings.Builder
	b.WriteString("New Order Received!\n\n")
	fmt.Fprintf(&b, "Order Number: %s\n", email.Order.OrderNumber)
	fmt.Fprintf(&b, "Customer: %s\n", email.Order.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", email.Order.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n", email.Order.CustomerPhone)
	fmt.Fprintf(&b, "Delivery Address: %s, %s\n", email.Order.DeliveryAddress, email.Order.DeliveryCity)
	fmt.Fprintf(&b, "Payment Method: %s\n\n", email.Order.PaymentMethod)

	b.WriteString("Order Items:\n")
	for _, item := range email.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Fprintf(&b, "- %s x%d - %s\n", name, item.Quantity, FormatRWF(item.Price*float64(item.Quantity)))
	}

	b.WriteString("\nOrder Summary:\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatRWF(email.Order.Subtotal))
	fmt.Fprintf(&b, "Delivery Fee: %s\n", FormatRWF(email.Order.DeliveryFee))
	fmt.Fprintf(&b, "Total: %s\n", FormatRWF(email.Order.Total))

	if email.Order.PaymentProofURL != nil {
		fmt.Fprintf(&b, "\nPayment Proof: %s\n", *email.Order.PaymentProofURL)
	}
	if email.Order.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", email.Order.Notes)
	}

	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		email.AdminEmail,
		url.QueryEscape(subject),
		url.QueryEscape(b.String()),
	)
}
