package mailer_test

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/mailer"
)

func sampleEmail() mailer.OrderEmail {
	proof := "/uploads/proof.png"
	order := &domain.Order{
		ID:              uuid.New(),
		OrderNumber:     "AKZ-20260830-4F2A1C",
		CustomerName:    "Alice Uwase",
		CustomerEmail:   "alice@example.com",
		CustomerPhone:   "+250788123456",
		DeliveryAddress: "KG 11 Ave 5",
		DeliveryCity:    "Kigali",
		PaymentMethod:   domain.PaymentMethodMoMo,
		Subtotal:        30000,
		DeliveryFee:     5000,
		Total:           35000,
		Notes:           "Ring the bell twice",
		PaymentProofURL: &proof,
		CreatedAt:       time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}
	items := []*domain.OrderItem{{
		OrderID:   order.ID,
		ProductID: uuid.New(),
		Quantity:  2,
		Price:     15000,
		Product:   &domain.Product{Name: "Rose Bouquet"},
	}}
	return mailer.OrderEmail{Order: order, Items: items, AdminEmail: "info.akazubaflorist@gmail.com"}
}

func TestFormatRWF(t *testing.T) {
	assert.Equal(t, "RWF 0", mailer.FormatRWF(0))
	assert.Equal(t, "RWF 500", mailer.FormatRWF(500))
	assert.Equal(t, "RWF 15,000", mailer.FormatRWF(15000))
	assert.Equal(t, "RWF 100,000", mailer.FormatRWF(100000))
	assert.Equal(t, "RWF 1,234,568", mailer.FormatRWF(1234567.6))
}

func TestRenderOrderNotification(t *testing.T) {
	body, err := mailer.RenderOrderNotification(sampleEmail())
	require.NoError(t, err)

	assert.Contains(t, body, "AKZ-20260830-4F2A1C")
	assert.Contains(t, body, "Alice Uwase")
	assert.Contains(t, body, "Rose Bouquet x2")
	assert.Contains(t, body, "RWF 30,000")
	assert.Contains(t, body, "RWF 5,000")
	assert.Contains(t, body, "RWF 35,000")
	assert.Contains(t, body, "/uploads/proof.png")
	assert.Contains(t, body, "Ring the bell twice")
}

func TestFallbackMailtoLink(t *testing.T) {
	link := mailer.FallbackMailtoLink(sampleEmail())
	require.True(t, strings.HasPrefix(link, "mailto:info.akazubaflorist@gmail.com?"))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "New Order #AKZ-20260830-4F2A1C - AKAZUBA FLORIST", q.Get("subject"))
	assert.Contains(t, q.Get("body"), "Rose Bouquet x2 - RWF 30,000")
	assert.Contains(t, q.Get("body"), "Total: RWF 35,000")
}

func TestSendWithoutRelayConfigured(t *testing.T) {
	m := mailer.NewSMTPMailer(config.SMTPConfig{}, zap.NewNop())
	err := m.SendOrderNotification(context.Background(), sampleEmail())
	require.Error(t, err, "missing relay must report failure so checkout can fall back")
}
