package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/config"
)

const orderTemplateText = `New Order Received!

Order Number: {{.OrderNumber}}
Order Date: {{.OrderDate}}

Customer:
  Name:    {{.CustomerName}}
  Email:   {{.CustomerEmail}}
  Phone:   {{.CustomerPhone}}
  Address: {{.DeliveryAddress}}, {{.DeliveryCity}}

Payment Method: {{.PaymentMethod}}

Order Items:
{{- range .Items}}
  - {{.Name}} x{{.Quantity}} @ {{.Price}} = {{.Total}}
{{- end}}

Order Summary:
  Subtotal:     {{.Subtotal}}
  Delivery Fee: {{.DeliveryFee}}
  Total:        {{.Total}}

Payment Proof: {{.PaymentProof}}
Notes: {{.Notes}}

---
AKAZUBA FLORIST
`

var orderTemplate = template.Must(template.New("order").Parse(orderTemplateText))

type templateItem struct {
	Name     string
	Quantity int
	Price    string
	Total    string
}

type templateData struct {
	OrderNumber     string
	OrderDate       string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	DeliveryCity    string
	PaymentMethod   string
	Items           []templateItem
	Subtotal        string
	DeliveryFee     string
	Total           string
	PaymentProof    string
	Notes           string
}

// SMTPMailer sends order notifications through a transactional SMTP relay
type SMTPMailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// NewSMTPMailer creates a mailer for cfg
func NewSMTPMailer(cfg config.SMTPConfig, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:    cfg,
		logger: logger,
	}
}

// SendOrderNotification renders the order template and mails it to the admin
// inbox. Callers treat any error as non-fatal.
func (m *SMTPMailer) SendOrderNotification(ctx context.Context, email OrderEmail) error {
	if m.cfg.Host == "" {
		return fmt.Errorf("smtp relay not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := RenderOrderNotification(email)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New Order #%s - AKAZUBA FLORIST", email.Order.OrderNumber)
	msg := strings.Join([]string{
		"From: " + m.cfg.From,
		"To: " + email.AdminEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.AdminEmail}, []byte(msg)); err != nil {
		m.logger.Warn("Order notification send failed", zap.String("order_number", email.Order.OrderNumber), zap.Error(err))
		return err
	}

	m.logger.Info("Order notification sent", zap.String("order_number", email.Order.OrderNumber))
	return nil
}

// RenderOrderNotification produces the plain-text notification body
func RenderOrderNotification(email OrderEmail) (string, error) {
	data := templateData{
		OrderNumber:     email.Order.OrderNumber,
		OrderDate:       email.Order.CreatedAt.Format(time.RFC1123),
		CustomerName:    email.Order.CustomerName,
		CustomerEmail:   email.Order.CustomerEmail,
		CustomerPhone:   email.Order.CustomerPhone,
		DeliveryAddress: email.Order.DeliveryAddress,
		DeliveryCity:    email.Order.DeliveryCity,
		PaymentMethod:   string(email.Order.PaymentMethod),
		Subtotal:        FormatRWF(email.Order.Subtotal),
		DeliveryFee:     FormatRWF(email.Order.DeliveryFee),
		Total:           FormatRWF(email.Order.Total),
		PaymentProof:    "No payment proof uploaded",
		Notes:           "No additional notes",
	}

	if email.Order.PaymentProofURL != nil && *email.Order.PaymentProofURL != "" {
		data.PaymentProof = *email.Order.PaymentProofURL
	}
	if email.Order.Notes != "" {
		data.Notes = email.Order.Notes
	}

	for _, item := range email.Items {
		name := item.ProductID.String()
		if item.Product != nil {
			name = item.Product.Name
		}
		data.Items = append(data.Items, templateItem{
			Name:     name,
			Quantity: item.Quantity,
			Price:    FormatRWF(item.Price),
			Total:    FormatRWF(item.Price * float64(item.Quantity)),
		})
	}

	var b strings.Builder
	if err := orderTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
