package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func listOrdersHandler(orders OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := authedUser(c)
		list, err := orders.ListCompleted(c.Request.Context(), u.ID, c.Query("search"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": toOrderResponses(list)})
	}
}

func getOrderHandler(orders OrdersService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := authedUser(c)
		o, err := orders.GetCompleted(c.Request.Context(), u.ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, toOrderResponse(*o))
	}
}

func receiptHandler(orders OrdersService, receipts ReceiptRenderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := authedUser(c)
		o, err := orders.GetCompleted(c.Request.Context(), u.ID, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		pdf, err := receipts.Render(*o)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt_order_%s.pdf"`, o.ID))
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
