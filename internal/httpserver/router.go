package httpserver

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"storefront/internal/domain"
	authsvc "storefront/internal/service/auth"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
)

const userKey = "authedUser"

// CatalogService lists and resolves products and categories.
type CatalogService interface {
	ListProducts(ctx context.Context, params catalogsvc.ListParams) (*catalogsvc.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// CartService mutates the authenticated user's open order.
type CartService interface {
	GetCart(ctx context.Context, userID string) (*domain.Order, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Order, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Order, error)
}

// CheckoutService turns the open order into a completed one.
type CheckoutService interface {
	Checkout(ctx context.Context, userID string, shipping checkoutsvc.ShippingInfo) (string, error)
}

// OrdersService queries completed-order history.
type OrdersService interface {
	ListCompleted(ctx context.Context, userID, filter string) ([]domain.Order, error)
	GetCompleted(ctx context.Context, userID, orderID string) (*domain.Order, error)
}

// AuthService registers users and resolves bearer tokens.
type AuthService interface {
	Register(ctx context.Context, in authsvc.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

// ReceiptRenderer turns a completed order into PDF bytes.
type ReceiptRenderer interface {
	Render(order domain.Order) ([]byte, error)
}

// Deps carries the services the router dispatches to.
type Deps struct {
	CatalogSvc  CatalogService
	CartSvc     CartService
	CheckoutSvc CheckoutService
	OrdersSvc   OrdersService
	AuthSvc     AuthService
	Receipts    ReceiptRenderer
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	switch {
	case deps.CatalogSvc == nil:
		return nil, errors.New("catalog service required")
	case deps.CartSvc == nil:
		return nil, errors.New("cart service required")
	case deps.CheckoutSvc == nil:
		return nil, errors.New("checkout service required")
	case deps.OrdersSvc == nil:
		return nil, errors.New("orders service required")
	case deps.AuthSvc == nil:
		return nil, errors.New("auth service required")
	case deps.Receipts == nil:
		return nil, errors.New("receipt renderer required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(allowedOrigins) > 0 {
		corsCfg.AllowOrigins = allowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.POST("/signup", signupHandler(deps.AuthSvc))
	router.POST("/login", loginHandler(deps.AuthSvc))

	router.GET("/products", listProductsHandler(deps.CatalogSvc))
	router.GET("/products/:id", getProductHandler(deps.CatalogSvc))
	router.GET("/categories", listCategoriesHandler(deps.CatalogSvc))

	me := router.Group("/me", authMiddleware(deps.AuthSvc))
	me.GET("/cart", getCartHandler(deps.CartSvc))
	me.POST("/cart/items", addCartItemHandler(deps.CartSvc))
	me.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
	me.POST("/checkout", checkoutHandler(deps.CheckoutSvc))
	me.GET("/orders", listOrdersHandler(deps.OrdersSvc))
	me.GET("/orders/:id", getOrderHandler(deps.OrdersSvc))
	me.GET("/orders/:id/receipt", receiptHandler(deps.OrdersSvc, deps.Receipts))

	return router, nil
}

// authMiddleware resolves the bearer token and stashes the user for
// handlers downstream.
func authMiddleware(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		u, err := auth.LookupToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(userKey, u)
		c.Next()
	}
}

func authedUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}
