package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/domain"
	"github.com/shyakx/akazuba-florist/pkg/errors"
)

// respondError maps typed app errors onto HTTP codes. Anything unclassified is
// a 500 with the detail kept in the logs.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	switch e := err.(type) {
	case *errors.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": e.Error()})
	case *errors.ErrValidation:
		resp := gin.H{"error": e.Error()}
		if len(e.Fields) > 0 {
			resp["fields"] = e.Fields
		}
		c.JSON(http.StatusUnprocessableEntity, resp)
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": e.Error()})
	case *errors.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": e.Error()})
	case *errors.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": e.Error()})
	default:
		logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// ProductResponse is the product wire shape
type ProductResponse struct {
	ID            string  `json:"id"`
	CategoryID    string  `json:"category_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID.String(),
		CategoryID:    p.CategoryID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
}

func toProductResponses(products []*domain.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// OrderResponse is the order wire shape
type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	Status          domain.OrderStatus  `json:"status"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   string              `json:"customer_email"`
	CustomerPhone   string              `json:"customer_phone"`
	DeliveryAddress string              `json:"delivery_address"`
	DeliveryCity    string              `json:"delivery_city"`
	PaymentMethod   string              `json:"payment_method"`
	Subtotal        float64             `json:"subtotal"`
	DeliveryFee     float64             `json:"delivery_fee"`
	Total           float64             `json:"total"`
	Notes           string              `json:"notes,omitempty"`
	PaymentProofURL *string             `json:"payment_proof_url,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`
	CreatedAt       string              `json:"created_at"`
	UpdatedAt       string              `json:"updated_at"`
}

type OrderItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

func toOrderResponse(order *domain.Order, items []*domain.OrderItem) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID.String(),
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryCity:    order.DeliveryCity,
		PaymentMethod:   string(order.PaymentMethod),
		Subtotal:        order.Subtotal,
		DeliveryFee:     order.DeliveryFee,
		Total:           order.Total,
		Notes:           order.Notes,
		PaymentProofURL: order.PaymentProofURL,
		CreatedAt:       order.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       order.UpdatedAt.Format(time.RFC3339),
	}

	for _, item := range items {
		ir := OrderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Price * float64(item.Quantity),
		}
		if item.Product != nil {
			ir.ProductName = item.Product.Name
			ir.ImageURL = item.Product.ImageURL
		}
		resp.Items = append(resp.Items, ir)
	}

	return resp
}
