package domain

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	// Pending - new order, awaiting admin confirmation
	OrderStatusPending OrderStatus = "pending"
	// Confirmed - order accepted by the shop
	OrderStatusConfirmed OrderStatus = "confirmed"
	// Processing - bouquet/parcel being prepared
	OrderStatusProcessing OrderStatus = "processing"
	// Shipped - out for delivery
	OrderStatusShipped OrderStatus = "shipped"
	// Delivered - received by the customer
	OrderStatusDelivered OrderStatus = "delivered"
	// Cancelled - called off before delivery
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is a known value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are expected
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if a status change follows the forward order
// pending -> confirmed -> processing -> shipped -> delivered, with cancelled
// reachable from any non-terminal state. Admin writes are not blocked on
// this; it drives warning logs for out-of-order changes.
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if newStatus == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return newStatus == OrderStatusProcessing
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	default:
		return false
	}
}

// PaymentMethod is how the customer pays: MTN mobile money, Bank of Kigali
// transfer, or cash on delivery.
type PaymentMethod string

const (
	PaymentMethodMoMo PaymentMethod = "momo"
	PaymentMethodBK   PaymentMethod = "bk"
	PaymentMethodCash PaymentMethod = "cash"
)

// IsValid checks if the payment method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodMoMo, PaymentMethodBK, PaymentMethodCash:
		return true
	default:
		return false
	}
}
