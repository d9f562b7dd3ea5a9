package memory

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

type profileRepo struct{ s *Store }

func (r *profileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, &errors.ErrNotFound{Resource: "profile", ID: id.String()}
}

func (r *profileRepo) GetByEmail(_ context.Context, email string) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if strings.EqualFold(p.Email, strings.TrimSpace(email)) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "profile", ID: email}
}

func (r *profileRepo) List(_ context.Context) ([]*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *profileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	for _, p := range r.s.profiles {
		if strings.EqualFold(p.Email, profile.Email) {
			return &errors.ErrConflict{Message: "email already registered"}
		}
	}
	cp := *profile
	r.s.profiles[profile.ID] = &cp
	return nil
}

func (r *profileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[profile.ID]; !ok {
		return &errors.ErrNotFound{Resource: "profile", ID: profile.ID.String()}
	}
	cp := *profile
	r.s.profiles[profile.ID] = &cp
	return nil
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) GetByTokenLookup(_ context.Context, tokenLookup string) (*domain.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sess := range r.s.sessions {
		if sess.TokenLookup == tokenLookup && sess.ExpiresAt.After(time.Now()) {
			cp := *sess
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "session", ID: tokenLookup}
}

func (r *sessionRepo) Create(_ context.Context, session *domain.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r *sessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.sessions, id)
	return nil
}

func (r *sessionRepo) DeleteByProfileID(_ context.Context, profileID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, sess := range r.s.sessions {
		if sess.ProfileID == profileID {
			delete(r.s.sessions, id)
		}
	}
	return nil
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, &errors.ErrNotFound{Resource: "category", ID: id.String()}
}

func (r *categoryRepo) List(_ context.Context) ([]*domain.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*domain.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

func (r *categoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; !ok {
		return &errors.ErrNotFound{Resource: "category", ID: category.ID.String()}
	}
	cp := *category
	r.s.categories[category.ID] = &cp
	return nil
}

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (r *productRepo) ListActive(_ context.Context, categoryID *uuid.UUID) ([]*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.s.products {
		if !p.IsActive {
			continue
		}
		if categoryID != nil && p.CategoryID != *categoryID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *productRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Product, error) {
	if !includeInactive {
		return r.ListActive(ctx, nil)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *productRepo) Create(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) Update(_ context.Context, product *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[product.ID]; !ok {
		return &errors.ErrNotFound{Resource: "product", ID: product.ID.String()}
	}
	product.UpdatedAt = time.Now()
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *productRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	p.IsActive = active
	p.UpdatedAt = time.Now()
	return nil
}

type cartItemRepo struct{ s *Store }

func (r *cartItemRepo) withProduct(item *domain.CartItem) *domain.CartItem {
	cp := *item
	if p, ok := r.s.products[item.ProductID]; ok {
		pc := *p
		cp.Product = &pc
	}
	return &cp
}

func (r *cartItemRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item, ok := r.s.cartItems[id]; ok {
		return r.withProduct(item), nil
	}
	return nil, &errors.ErrNotFound{Resource: "cart_item", ID: id.String()}
}

func (r *cartItemRepo) GetByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.cartItems {
		if item.UserID == userID && item.ProductID == productID {
			return r.withProduct(item), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "cart_item", ID: productID.String()}
}

func (r *cartItemRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.CartItem
	for _, item := range r.s.cartItems {
		if item.UserID == userID {
			out = append(out, r.withProduct(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *cartItemRepo) SumQuantities(_ context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := 0
	for _, item := range r.s.cartItems {
		if item.UserID == userID {
			sum += item.Quantity
		}
	}
	return sum, nil
}

func (r *cartItemRepo) Create(_ context.Context, item *domain.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = now
	}
	cp := *item
	cp.Product = nil
	r.s.cartItems[item.ID] = &cp
	return nil
}

func (r *cartItemRepo) UpdateQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.cartItems[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "cart_item", ID: id.String()}
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	return nil
}

func (r *cartItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.cartItems, id)
	return nil
}

func (r *cartItemRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, item := range r.s.cartItems {
		if item.UserID == userID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

type wishlistRepo struct{ s *Store }

func (r *wishlistRepo) GetByUserAndProduct(_ context.Context, userID, productID uuid.UUID) (*domain.WishlistItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.wishlist {
		if item.UserID == userID && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "wishlist_item", ID: productID.String()}
}

func (r *wishlistRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*domain.WishlistItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.WishlistItem
	for _, item := range r.s.wishlist {
		if item.UserID != userID {
			continue
		}
		cp := *item
		if p, ok := r.s.products[item.ProductID]; ok {
			pc := *p
			cp.Product = &pc
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *wishlistRepo) Create(_ context.Context, item *domain.WishlistItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.wishlist {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return nil // unique per (user, product)
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	cp := *item
	cp.Product = nil
	r.s.wishlist[item.ID] = &cp
	return nil
}

func (r *wishlistRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.wishlist, id)
	return nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(_ context.Context, order *domain.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = now
	}
	cp := *order
	r.s.orders[order.ID] = &cp
	return nil
}

func (r *orderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
}

func (r *orderRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order", ID: orderNumber}
}

func (r *orderRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Order
	for _, o := range r.s.orders {
		if o.UserID == userID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *orderRepo) List(_ context.Context, status *domain.OrderStatus, limit, offset int) ([]*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	var out []*domain.Order
	for _, o := range r.s.orders {
		if status != nil && o.Status != *status {
			continue
		}
		cp := *o
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *orderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	return nil
}

func (r *orderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.orders[id]; !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	delete(r.s.orders, id)
	return nil
}

type orderItemRepo struct{ s *Store }

func (r *orderItemRepo) CreateBatch(_ context.Context, items []*domain.OrderItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failItems {
		return stderrors.New("order item insert failed")
	}
	now := time.Now()
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		cp := *item
		cp.Product = nil
		r.s.orderItems[item.ID] = &cp
	}
	return nil
}

func (r *orderItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.OrderItem
	for _, item := range r.s.orderItems {
		if item.OrderID != orderID {
			continue
		}
		cp := *item
		if p, ok := r.s.products[item.ProductID]; ok {
			pc := *p
			cp.Product = &pc
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *orderItemRepo) DeleteByOrderID(_ context.Context, orderID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, item := range r.s.orderItems {
		if item.OrderID == orderID {
			delete(r.s.orderItems, id)
		}
	}
	return nil
}

type siteContentRepo struct{ s *Store }

func (r *siteContentRepo) Get(_ context.Context, page, section string) (*domain.SiteContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.siteContent[page+"/"+section]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, &errors.ErrNotFound{Resource: "site_content", ID: page + "/" + section}
}

func (r *siteContentRepo) ListByPage(_ context.Context, page string) ([]*domain.SiteContent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.SiteContent
	for _, c := range r.s.siteContent {
		if c.Page == page {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Section < out[j].Section })
	return out, nil
}

func (r *siteContentRepo) Upsert(_ context.Context, content *domain.SiteContent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	content.UpdatedAt = time.Now()
	cp := *content
	r.s.siteContent[content.Page+"/"+content.Section] = &cp
	return nil
}

type orderEventRepo struct{ s *Store }

func (r *orderEventRepo) Create(_ context.Context, event *domain.OrderEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	cp := *event
	r.s.orderEvents[event.OrderID] = append(r.s.orderEvents[event.OrderID], &cp)
	return nil
}

func (r *orderEventRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]*domain.OrderEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	events := r.s.orderEvents[orderID]
	out := make([]*domain.OrderEvent, len(events))
	for i, e := range events {
		cp := *e
		out[i] = &cp
	}
	return out, nil
}

type idempotencyRepo struct{ s *Store }

func (r *idempotencyRepo) GetByKey(_ context.Context, key string) (*domain.IdempotencyKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if k, ok := r.s.idempotency[key]; ok {
		cp := *k
		return &cp, nil
	}
	return nil, nil
}

func (r *idempotencyRepo) Create(_ context.Context, key *domain.IdempotencyKey) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now()
	}
	if _, ok := r.s.idempotency[key.Key]; ok {
		return nil
	}
	cp := *key
	r.s.idempotency[key.Key] = &cp
	return nil
}

type analyticsRepo struct{ s *Store }

func (r *analyticsRepo) CountProducts(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.products), nil
}

func (r *analyticsRepo) CountOrders(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.orders), nil
}

func (r *analyticsRepo) CountOrdersByStatus(_ context.Context, status domain.OrderStatus) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, o := range r.s.orders {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *analyticsRepo) CountCustomers(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.profiles {
		if !p.IsAdmin {
			n++
		}
	}
	return n, nil
}

func (r *analyticsRepo) CountLowStockProducts(_ context.Context, threshold int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, p := range r.s.products {
		if p.IsActive && p.StockQuantity < threshold {
			n++
		}
	}
	return n, nil
}

func (r *analyticsRepo) RevenueDelivered(_ context.Context) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total float64
	for _, o := range r.s.orders {
		if o.Status == domain.OrderStatusDelivered {
			total += o.Total
		}
	}
	return total, nil
}

func (r *analyticsRepo) RevenueDeliveredBetween(_ context.Context, from, to time.Time) (float64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total float64
	for _, o := range r.s.orders {
		if o.Status == domain.OrderStatusDelivered && !o.CreatedAt.Before(from) && o.CreatedAt.Before(to) {
			total += o.Total
		}
	}
	return total, nil
}
