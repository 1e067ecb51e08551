package httpserver

import (
	"context"
	"log/slog"

	"marketplace-api/internal/bus"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/metrics"
	cartsvc "marketplace-api/internal/service/cart"
	collectionsvc "marketplace-api/internal/service/collection"
	notificationsvc "marketplace-api/internal/service/notification"
	ordersvc "marketplace-api/internal/service/order"
	paymentsvc "marketplace-api/internal/service/payment"
	productsvc "marketplace-api/internal/service/product"
	usersvc "marketplace-api/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Consumer-side views of the services, narrowed to what the handlers call.
type userService interface {
	Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, current, next string) error
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type productService interface {
	Create(ctx context.Context, sellerID string, in productsvc.CreateInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Product, error)
	Update(ctx context.Context, actorID, productID string, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, actorID, productID string) error
}

type collectionService interface {
	Create(ctx context.Context, sellerID string, in collectionsvc.CreateInput) (*domain.Collection, error)
	Get(ctx context.Context, id string) (*domain.Collection, error)
	ListBySeller(ctx context.Context, sellerID string) ([]domain.Collection, error)
	AddProduct(ctx context.Context, actorID, collectionID, productID string) (*domain.Collection, error)
	RemoveProduct(ctx context.Context, actorID, collectionID, productID string) (*domain.Collection, error)
	Delete(ctx context.Context, actorID, collectionID string) error
}

type cartService interface {
	View(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (bool, error)
}

type orderService interface {
	Create(ctx context.Context, buyerID, deliveryAddress, paymentMethod string) (*domain.Order, error)
	Get(ctx context.Context, actorID, orderID string) (*domain.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, actorID, orderID string, next domain.OrderStatus) (*domain.Order, error)
}

type paymentService interface {
	Process(ctx context.Context, buyerID, orderID, methodToken string) (*paymentsvc.Confirmation, error)
}

type notificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID string, ids []string) (int64, error)
}

var (
	_ userService         = (*usersvc.Service)(nil)
	_ productService      = (*productsvc.Service)(nil)
	_ collectionService   = (*collectionsvc.Service)(nil)
	_ cartService         = (*cartsvc.Service)(nil)
	_ orderService        = (*ordersvc.Service)(nil)
	_ paymentService      = (*paymentsvc.Service)(nil)
	_ notificationService = (*notificationsvc.Service)(nil)
)

// Deps carries everything the router needs.
type Deps struct {
	Logger        *slog.Logger
	DB            *gorm.DB
	Users         userService
	Products      productService
	Collections   collectionService
	Carts         cartService
	Orders        orderService
	Payments      paymentService
	Notifications notificationService
	Bus           bus.Publisher
}

// buildRouter wires routes for the API.
func buildRouter(deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.DB))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	h := &handlers{deps: deps}

	v1 := router.Group("/api/v1")
	v1.POST("/auth/signup", h.signup)
	v1.POST("/auth/login", h.login)
	v1.GET("/products", h.listProducts)
	v1.GET("/products/:id", h.getProduct)
	v1.GET("/collections/:id", h.getCollection)

	authed := v1.Group("", h.requireAuth)
	authed.POST("/auth/logout", h.logout)
	authed.PUT("/auth/password", h.changePassword)
	authed.GET("/me", h.me)

	authed.POST("/products", h.createProduct)
	authed.PATCH("/products/:id", h.updateProduct)
	authed.DELETE("/products/:id", h.deleteProduct)

	authed.POST("/collections", h.createCollection)
	authed.GET("/collections", h.listCollections)
	authed.POST("/collections/:id/products/:productID", h.addCollectionProduct)
	authed.DELETE("/collections/:id/products/:productID", h.removeCollectionProduct)
	authed.DELETE("/collections/:id", h.deleteCollection)

	authed.GET("/cart", h.viewCart)
	authed.POST("/cart/items", h.addCartItem)
	authed.PATCH("/cart/items/:productID", h.updateCartItem)
	authed.DELETE("/cart/items/:productID", h.removeCartItem)
	authed.DELETE("/cart", h.clearCart)

	authed.POST("/orders", h.checkout)
	authed.GET("/orders", h.listOrders)
	authed.GET("/orders/:id", h.getOrder)
	authed.POST("/orders/:id/pay", h.payOrder)
	authed.PATCH("/orders/:id/status", h.updateOrderStatus)

	authed.GET("/notifications", h.listNotifications)
	authed.POST("/notifications/read", h.markNotificationsRead)

	return router
}

type handlers struct {
	deps Deps
}
