package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	checkoutsvc "storefront/internal/service/checkout"
)

func checkoutHandler(checkouts CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var shipping checkoutsvc.ShippingInfo
		if err := c.ShouldBindJSON(&shipping); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed shipping payload"})
			return
		}
		u := authedUser(c)
		orderID, err := checkouts.Checkout(c.Request.Context(), u.ID, shipping)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": orderID})
	}
}
