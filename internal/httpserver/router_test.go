package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"marketplace-api/internal/domain"
	collectionsvc "marketplace-api/internal/service/collection"
	ordersvc "marketplace-api/internal/service/order"
	paymentsvc "marketplace-api/internal/service/payment"
	productsvc "marketplace-api/internal/service/product"
	usersvc "marketplace-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

type stubUsers struct {
	signup         func(usersvc.SignupInput) (*domain.User, error)
	login          func(email, password string) (*domain.User, string, string, error)
	authenticate   func(token string) (string, error)
	logout         func(token string) error
	changePassword func(userID, current, next string) error
	get            func(userID string) (*domain.User, error)
}

func (s *stubUsers) Signup(_ context.Context, in usersvc.SignupInput) (*domain.User, error) {
	return s.signup(in)
}
func (s *stubUsers) Login(_ context.Context, email, password string) (*domain.User, string, string, error) {
	return s.login(email, password)
}
func (s *stubUsers) Authenticate(_ context.Context, token string) (string, error) {
	return s.authenticate(token)
}
func (s *stubUsers) Logout(_ context.Context, token string) error { return s.logout(token) }
func (s *stubUsers) ChangePassword(_ context.Context, userID, current, next string) error {
	return s.changePassword(userID, current, next)
}
func (s *stubUsers) Get(_ context.Context, userID string) (*domain.User, error) {
	return s.get(userID)
}

type stubProducts struct {
	create       func(sellerID string, in productsvc.CreateInput) (*domain.Product, error)
	get          func(id string) (*domain.Product, error)
	list         func() ([]domain.Product, error)
	listBySeller func(sellerID string) ([]domain.Product, error)
	update       func(actorID, productID string, in productsvc.UpdateInput) (*domain.Product, error)
	delete       func(actorID, productID string) error
}

func (s *stubProducts) Create(_ context.Context, sellerID string, in productsvc.CreateInput) (*domain.Product, error) {
	return s.create(sellerID, in)
}
func (s *stubProducts) Get(_ context.Context, id string) (*domain.Product, error) { return s.get(id) }
func (s *stubProducts) List(_ context.Context) ([]domain.Product, error)          { return s.list() }
func (s *stubProducts) ListBySeller(_ context.Context, sellerID string) ([]domain.Product, error) {
	return s.listBySeller(sellerID)
}
func (s *stubProducts) Update(_ context.Context, actorID, productID string, in productsvc.UpdateInput) (*domain.Product, error) {
	return s.update(actorID, productID, in)
}
func (s *stubProducts) Delete(_ context.Context, actorID, productID string) error {
	return s.delete(actorID, productID)
}

type stubCollections struct{}

func (stubCollections) Create(_ context.Context, _ string, _ collectionsvc.CreateInput) (*domain.Collection, error) {
	return &domain.Collection{}, nil
}
func (stubCollections) Get(_ context.Context, _ string) (*domain.Collection, error) {
	return &domain.Collection{}, nil
}
func (stubCollections) ListBySeller(_ context.Context, _ string) ([]domain.Collection, error) {
	return nil, nil
}
func (stubCollections) AddProduct(_ context.Context, _, _, _ string) (*domain.Collection, error) {
	return &domain.Collection{}, nil
}
func (stubCollections) RemoveProduct(_ context.Context, _, _, _ string) (*domain.Collection, error) {
	return &domain.Collection{}, nil
}
func (stubCollections) Delete(_ context.Context, _, _ string) error { return nil }

type stubCarts struct {
	view    func(userID string) (*domain.Cart, error)
	addItem func(userID, productID string, quantity int) (*domain.Cart, error)
}

func (s *stubCarts) View(_ context.Context, userID string) (*domain.Cart, error) {
	return s.view(userID)
}
func (s *stubCarts) AddItem(_ context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	return s.addItem(userID, productID, quantity)
}
func (s *stubCarts) UpdateItem(_ context.Context, _, _ string, _ int) (*domain.Cart, error) {
	return &domain.Cart{}, nil
}
func (s *stubCarts) RemoveItem(_ context.Context, _, _ string) (*domain.Cart, error) {
	return &domain.Cart{}, nil
}
func (s *stubCarts) Clear(_ context.Context, _ string) (bool, error) { return true, nil }

type stubOrders struct {
	create       func(buyerID, address, method string) (*domain.Order, error)
	get          func(actorID, orderID string) (*domain.Order, error)
	updateStatus func(actorID, orderID string, next domain.OrderStatus) (*domain.Order, error)
}

func (s *stubOrders) Create(_ context.Context, buyerID, address, method string) (*domain.Order, error) {
	return s.create(buyerID, address, method)
}
func (s *stubOrders) Get(_ context.Context, actorID, orderID string) (*domain.Order, error) {
	return s.get(actorID, orderID)
}
func (s *stubOrders) ListByBuyer(_ context.Context, _ string) ([]domain.Order, error) {
	return []domain.Order{}, nil
}
func (s *stubOrders) UpdateStatus(_ context.Context, actorID, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	return s.updateStatus(actorID, orderID, next)
}

type stubPayments struct {
	process func(buyerID, orderID, methodToken string) (*paymentsvc.Confirmation, error)
}

func (s *stubPayments) Process(_ context.Context, buyerID, orderID, methodToken string) (*paymentsvc.Confirmation, error) {
	return s.process(buyerID, orderID, methodToken)
}

type stubNotifications struct{}

func (stubNotifications) List(_ context.Context, _ string) ([]domain.Notification, error) {
	return []domain.Notification{}, nil
}
func (stubNotifications) MarkRead(_ context.Context, _ string, ids []string) (int64, error) {
	return int64(len(ids)), nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *capturePublisher) Publish(_ context.Context, evt domain.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func testDeps() (Deps, *capturePublisher) {
	pub := &capturePublisher{}
	deps := Deps{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Users: &stubUsers{
			authenticate: func(token string) (string, error) {
				if token == "good-token" {
					return "u1", nil
				}
				return "", usersvc.ErrInvalidToken
			},
		},
		Collections:   stubCollections{},
		Notifications: stubNotifications{},
		Bus:           pub,
	}
	return deps, pub
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupCreated(t *testing.T) {
	deps, _ := testDeps()
	deps.Users.(*stubUsers).signup = func(in usersvc.SignupInput) (*domain.User, error) {
		return &domain.User{ID: "u1", Email: in.Email}, nil
	}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/signup", "",
		map[string]string{"email": "a@example.com", "password": "longenough", "name": "A"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSignupConflict(t *testing.T) {
	deps, _ := testDeps()
	deps.Users.(*stubUsers).signup = func(usersvc.SignupInput) (*domain.User, error) {
		return nil, domain.ErrAlreadyExists
	}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/signup", "",
		map[string]string{"email": "a@example.com", "password": "longenough"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	deps, _ := testDeps()
	deps.Users.(*stubUsers).login = func(_, _ string) (*domain.User, string, string, error) {
		return nil, "", "", usersvc.ErrInvalidCredentials
	}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "a@example.com", "password": "nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	deps, _ := testDeps()
	deps.Carts = &stubCarts{view: func(string) (*domain.Cart, error) { return &domain.Cart{}, nil }}
	router := buildRouter(deps)

	if w := doRequest(t, router, http.MethodGet, "/api/v1/cart", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/api/v1/cart", "stale", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/api/v1/cart", "good-token", nil); w.Code != http.StatusOK {
		t.Fatalf("good token: expected 200, got %d", w.Code)
	}
}

func TestCheckoutPublishesOnePurchaseEventPerSeller(t *testing.T) {
	deps, pub := testDeps()
	deps.Orders = &stubOrders{create: func(buyerID, address, _ string) (*domain.Order, error) {
		return &domain.Order{
			ID:              "o1",
			BuyerID:         buyerID,
			DeliveryAddress: address,
			Items: []domain.OrderItem{
				{ProductID: "p1", Quantity: 2},
				{ProductID: "p2", Quantity: 1},
				{ProductID: "p3", Quantity: 1},
			},
		}, nil
	}}
	deps.Products = &stubProducts{get: func(id string) (*domain.Product, error) {
		sellers := map[string]string{"p1": "s1", "p2": "s1", "p3": "s2"}
		return &domain.Product{ID: id, SellerID: sellers[id]}, nil
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/orders", "good-token",
		map[string]string{"deliveryAddress": "12 Main St", "paymentMethod": "card"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected one event per distinct seller, got %d", len(pub.events))
	}
	for _, evt := range pub.events {
		bought, ok := evt.(domain.ProductBought)
		if !ok || bought.DeliveryAddress != "12 Main St" {
			t.Fatalf("unexpected event %+v", evt)
		}
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	deps, pub := testDeps()
	deps.Orders = &stubOrders{create: func(_, _, _ string) (*domain.Order, error) {
		return nil, domain.ErrEmptyCart
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/orders", "good-token",
		map[string]string{"deliveryAddress": "12 Main St", "paymentMethod": "card"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if len(pub.events) != 0 {
		t.Fatalf("no events expected on failed checkout, got %d", len(pub.events))
	}
}

func TestCheckoutInsufficientInventory(t *testing.T) {
	deps, _ := testDeps()
	deps.Orders = &stubOrders{create: func(_, _, _ string) (*domain.Order, error) {
		return nil, &domain.InsufficientInventoryError{ProductID: "p1", Requested: 5}
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/orders", "good-token",
		map[string]string{"deliveryAddress": "12 Main St", "paymentMethod": "card"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["productId"] != "p1" {
		t.Fatalf("expected offending product in body, got %v", body)
	}
}

func TestForeignOrderForbidden(t *testing.T) {
	deps, _ := testDeps()
	deps.Orders = &stubOrders{get: func(_, _ string) (*domain.Order, error) {
		return nil, domain.ErrUnauthorized
	}}
	router := buildRouter(deps)

	if w := doRequest(t, router, http.MethodGet, "/api/v1/orders/o2", "good-token", nil); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestPayDeclined(t *testing.T) {
	deps, _ := testDeps()
	deps.Payments = &stubPayments{process: func(_, _, _ string) (*paymentsvc.Confirmation, error) {
		return nil, domain.ErrPaymentFailed
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/orders/o1/pay", "good-token",
		map[string]string{"methodToken": "tok_visa"})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
}

func TestStatusTransitionConflict(t *testing.T) {
	deps, _ := testDeps()
	deps.Orders = &stubOrders{updateStatus: func(_, _ string, _ domain.OrderStatus) (*domain.Order, error) {
		return nil, ordersvc.ErrInvalidTransition
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPatch, "/api/v1/orders/o1/status", "good-token",
		map[string]string{"status": "pending"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestStatusUpdatePassesActor(t *testing.T) {
	deps, _ := testDeps()
	var gotActor string
	deps.Orders = &stubOrders{updateStatus: func(actorID, orderID string, next domain.OrderStatus) (*domain.Order, error) {
		gotActor = actorID
		return &domain.Order{ID: orderID, BuyerID: actorID, Status: next}, nil
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPatch, "/api/v1/orders/o1/status", "good-token",
		map[string]string{"status": "cancelled"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotActor != "u1" {
		t.Fatalf("expected authenticated user forwarded as actor, got %q", gotActor)
	}
}

func TestUnknownProductIs404(t *testing.T) {
	deps, _ := testDeps()
	deps.Products = &stubProducts{get: func(string) (*domain.Product, error) {
		return nil, domain.ErrProductNotFound
	}}
	router := buildRouter(deps)

	if w := doRequest(t, router, http.MethodGet, "/api/v1/products/missing", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUnexpectedErrorIs500(t *testing.T) {
	deps, _ := testDeps()
	deps.Carts = &stubCarts{view: func(string) (*domain.Cart, error) {
		return nil, errors.New("connection reset")
	}}
	router := buildRouter(deps)

	if w := doRequest(t, router, http.MethodGet, "/api/v1/cart", "good-token", nil); w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestAddCartItemValidation(t *testing.T) {
	deps, _ := testDeps()
	deps.Carts = &stubCarts{addItem: func(_, _ string, _ int) (*domain.Cart, error) {
		return nil, domain.ValidationError("quantity must be at least 1")
	}}
	router := buildRouter(deps)

	w := doRequest(t, router, http.MethodPost, "/api/v1/cart/items", "good-token",
		map[string]any{"productId": "p1", "quantity": -1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	deps, _ := testDeps()
	router := buildRouter(deps)

	if w := doRequest(t, router, http.MethodGet, "/healthz", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	deps, _ := testDeps()
	router := buildRouter(deps)

	if w := doRequest(t, router, http.MethodGet, "/metrics", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
