package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/api"
	"github.com/shyakx/akazuba-florist/internal/config"
	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/internal/mailer"
	"github.com/shyakx/akazuba-florist/internal/repository"
	"github.com/shyakx/akazuba-florist/internal/repository/memory"
	"github.com/shyakx/akazuba-florist/internal/service"
)

type apiEnv struct {
	router http.Handler
	repos  *repository.Repositories
	store  *memory.Store
}

type noopMailer struct{}

func (noopMailer) SendOrderNotification(_ context.Context, _ mailer.OrderEmail) error { return nil }

type noopStore struct{}

func (noopStore) Save(_ context.Context, name string, _ io.Reader) (string, error) {
	return "/uploads/" + name, nil
}

func newAPIEnv() *apiEnv {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	repos := memory.NewRepositories(store)
	logger := zap.NewNop()
	cfg := &config.Config{
		Environment: "test",
		Delivery:    config.DeliveryConfig{FreeThreshold: 100000, FlatFee: 5000},
		SMTP:        config.SMTPConfig{AdminEmail: "info.akazubaflorist@gmail.com"},
		Storage:     config.StorageConfig{PublicBaseURL: ""},
	}
	counts := service.NewCartCountCache(repos, logger)
	router := api.NewRouter(cfg, repos, counts, noopStore{}, noopMailer{}, logger)
	return &apiEnv{router: router, repos: repos, store: store}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, body interface{}, extraHeaders ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, headers := range extraHeaders {
		for k, v := range headers {
			req.Header.Set(k, v)
		}
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// register creates an account through the API and returns its token
func (e *apiEnv) register(t *testing.T, email string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email": email, "full_name": "Test User", "password": "sup3rsecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	return resp.Token
}

// registerAdmin registers then flips the admin flag directly in the store
func (e *apiEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	token := e.register(t, email)
	profile, err := e.repos.Profile.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	profile.IsAdmin = true
	require.NoError(t, e.repos.Profile.Update(context.Background(), profile))
	return token
}

func (e *apiEnv) seedCatalog(t *testing.T) *domain.Product {
	t.Helper()
	ctx := context.Background()
	category := &domain.Category{ID: uuid.New(), Name: "Flowers", Slug: "flowers"}
	require.NoError(t, e.repos.Category.Create(ctx, category))
	product := &domain.Product{
		ID:         uuid.New(),
		CategoryID: category.ID,
		Name:       "Rose Bouquet",
		Price:      30000,
		IsActive:   true,
	}
	require.NoError(t, e.repos.Product.Create(ctx, product))
	return product
}

func TestGuestGetsRegisterRedirect(t *testing.T) {
	env := newAPIEnv()

	rec := env.do(t, http.MethodGet, "/v1/cart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	decode(t, rec, &resp)
	assert.Equal(t, "/register", resp["redirect"])
}

func TestRegisterLoginMe(t *testing.T) {
	env := newAPIEnv()
	token := env.register(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}
	decode(t, rec, &me)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.False(t, me.IsAdmin)

	// Fresh login works too
	rec = env.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "sup3rsecret",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartFlow(t *testing.T) {
	env := newAPIEnv()
	token := env.register(t, "alice@example.com")
	product := env.seedCatalog(t)

	// Add twice; the line merges
	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/v1/cart/items", token, map[string]string{
			"product_id": product.ID.String(),
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := env.do(t, http.MethodGet, "/v1/cart/count", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var count struct {
		Count int `json:"count"`
	}
	decode(t, rec, &count)
	assert.Equal(t, 2, count.Count)

	rec = env.do(t, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart struct {
		Items []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	decode(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 60000.0, cart.Total)
}

func checkoutPayload() map[string]string {
	return map[string]string{
		"customer_name":    "Alice Uwase",
		"customer_email":   "alice@example.com",
		"customer_phone":   "+250788123456",
		"delivery_address": "KG 11 Ave 5",
		"payment_method":   "momo",
	}
}

func TestCheckoutCreatesOrder(t *testing.T) {
	env := newAPIEnv()
	token := env.register(t, "alice@example.com")
	product := env.seedCatalog(t)

	rec := env.do(t, http.MethodPost, "/v1/cart/items", token, map[string]string{
		"product_id": product.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/checkout", token, checkoutPayload())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Order struct {
			ID          string  `json:"id"`
			Status      string  `json:"status"`
			DeliveryFee float64 `json:"delivery_fee"`
			Total       float64 `json:"total"`
		} `json:"order"`
		EmailSent bool `json:"email_sent"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "pending", resp.Order.Status)
	assert.Equal(t, 5000.0, resp.Order.DeliveryFee)
	assert.Equal(t, 35000.0, resp.Order.Total)
	assert.True(t, resp.EmailSent)

	// My orders shows it; another account's view does not
	rec = env.do(t, http.MethodGet, "/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine struct {
		Orders []json.RawMessage `json:"orders"`
	}
	decode(t, rec, &mine)
	assert.Len(t, mine.Orders, 1)

	other := env.register(t, "bob@example.com")
	rec = env.do(t, http.MethodGet, "/v1/orders/"+resp.Order.ID, other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "foreign orders look nonexistent")
}

func TestCheckoutIdempotencyKeyReplays(t *testing.T) {
	env := newAPIEnv()
	token := env.register(t, "alice@example.com")
	product := env.seedCatalog(t)

	rec := env.do(t, http.MethodPost, "/v1/cart/items", token, map[string]string{
		"product_id": product.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	key := map[string]string{"Idempotency-Key": "attempt-1"}

	first := env.do(t, http.MethodPost, "/v1/checkout", token, checkoutPayload(), key)
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	var firstResp struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	decode(t, first, &firstResp)

	// Same key, same payload: the original order comes back, no duplicate
	second := env.do(t, http.MethodPost, "/v1/checkout", token, checkoutPayload(), key)
	require.Equal(t, http.StatusOK, second.Code, second.Body.String())
	var secondResp struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	decode(t, second, &secondResp)
	assert.Equal(t, firstResp.Order.ID, secondResp.Order.ID)

	orders, err := env.repos.Order.ListByUserID(context.Background(), mustProfileID(t, env, "alice@example.com"))
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	// Same key, different payload is a client bug
	altered := checkoutPayload()
	altered["customer_name"] = "Someone Else"
	conflict := env.do(t, http.MethodPost, "/v1/checkout", token, altered, key)
	assert.Equal(t, http.StatusConflict, conflict.Code)
}

func mustProfileID(t *testing.T, env *apiEnv, email string) uuid.UUID {
	t.Helper()
	profile, err := env.repos.Profile.GetByEmail(context.Background(), email)
	require.NoError(t, err)
	return profile.ID
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	env := newAPIEnv()
	customer := env.register(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/v1/admin/orders", customer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := env.registerAdmin(t, "boss@example.com")
	rec = env.do(t, http.MethodGet, "/v1/admin/orders", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminOrderStatusUpdate(t *testing.T) {
	env := newAPIEnv()
	customer := env.register(t, "alice@example.com")
	admin := env.registerAdmin(t, "boss@example.com")
	product := env.seedCatalog(t)

	rec := env.do(t, http.MethodPost, "/v1/cart/items", customer, map[string]string{
		"product_id": product.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/v1/checkout", customer, checkoutPayload())
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	decode(t, rec, &created)

	// Any valid status is accepted, even out of order
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/v1/admin/orders/%s/status", created.Order.ID), admin, map[string]string{
		"status": "delivered",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/v1/admin/orders/%s/status", created.Order.ID), admin, map[string]string{
		"status": "refunded",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCatalogHidesInactiveProducts(t *testing.T) {
	env := newAPIEnv()
	product := env.seedCatalog(t)
	admin := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodDelete, "/v1/products/"+product.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "public surface has no delete")

	rec = env.do(t, http.MethodDelete, "/v1/admin/products/"+product.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Products []json.RawMessage `json:"products"`
	}
	decode(t, rec, &listing)
	assert.Empty(t, listing.Products)

	// Direct fetch still resolves for order history
	rec = env.do(t, http.MethodGet, "/v1/products/"+product.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStoreStatusEndpoint(t *testing.T) {
	env := newAPIEnv()

	rec := env.do(t, http.MethodGet, "/v1/store/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status struct {
			CurrentTime string `json:"current_time"`
		} `json:"status"`
		BusinessHours string `json:"business_hours"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, "Monday - Sunday: 8:00 AM - 8:00 PM", resp.BusinessHours)
	assert.NotEmpty(t, resp.Status.CurrentTime)
}

func TestSiteContentRoundTrip(t *testing.T) {
	env := newAPIEnv()
	admin := env.registerAdmin(t, "boss@example.com")

	rec := env.do(t, http.MethodPut, "/v1/admin/content", admin, map[string]string{
		"page": "about", "section": "hero", "content": "Fresh flowers, every day.",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Overwrite the same block
	rec = env.do(t, http.MethodPut, "/v1/admin/content", admin, map[string]string{
		"page": "about", "section": "hero", "content": "Fresh flowers and perfumes.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/v1/content/about", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var content struct {
		Sections map[string]string `json:"sections"`
	}
	decode(t, rec, &content)
	assert.Equal(t, "Fresh flowers and perfumes.", content.Sections["hero"])
}

func TestWishlistToggleEndpoint(t *testing.T) {
	env := newAPIEnv()
	token := env.register(t, "alice@example.com")
	product := env.seedCatalog(t)

	body := map[string]string{"product_id": product.ID.String()}

	rec := env.do(t, http.MethodPost, "/v1/wishlist/toggle", token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		InWishlist bool `json:"in_wishlist"`
	}
	decode(t, rec, &resp)
	assert.True(t, resp.InWishlist)

	rec = env.do(t, http.MethodPost, "/v1/wishlist/toggle", token, body)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	assert.False(t, resp.InWishlist)
}
