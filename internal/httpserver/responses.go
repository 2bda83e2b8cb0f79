package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	checkoutsvc "storefront/internal/service/checkout"
)

// orderResponse adds the derived total and item count to an order.
type orderResponse struct {
	domain.Order
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func toOrderResponse(o domain.Order) orderResponse {
	if o.Items == nil {
		o.Items = []domain.OrderItem{}
	}
	return orderResponse{
		Order:     o,
		Total:     o.Total(),
		ItemCount: o.ItemCount(),
	}
}

func toOrderResponses(orders []domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

// respondError maps known error kinds to status codes. Unknown errors
// become opaque 500s.
func respondError(c *gin.Context, err error) {
	var oos *domain.OutOfStockError
	var verr *checkoutsvc.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
	case errors.As(err, &oos):
		c.JSON(http.StatusConflict, gin.H{"error": oos.Error(), "product": oos.ProductName})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
