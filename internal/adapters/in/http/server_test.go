package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/generated/servers"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryOrderRepo is an in-process ports.OrderRepository used to exercise
// the full request path without a database. Query endpoints run raw SQL
// and are covered by their own integration suites.
type memoryOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*order.Order
}

func newMemoryOrderRepo() *memoryOrderRepo {
	return &memoryOrderRepo{orders: make(map[string]*order.Order)}
}

func (r *memoryOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memoryOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[aggregate.ID().String()] = aggregate
	return nil
}

func (r *memoryOrderRepo) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	aggregate, ok := r.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return aggregate, nil
}

func (r *memoryOrderRepo) GetByCustomer(_ context.Context, _ string) ([]*order.Order, error) {
	return nil, nil
}

func (r *memoryOrderRepo) GetAll(_ context.Context, _, _ int) ([]*order.Order, error) {
	return nil, nil
}

func (r *memoryOrderRepo) ExistsByExternalOrderID(_ context.Context, externalOrderID kernel.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, aggregate := range r.orders {
		if id := aggregate.ExternalOrderID(); id != nil && id.IsEqual(externalOrderID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryOrderRepo) Delete(_ context.Context, id kernel.OrderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.orders, id.String())
	return nil
}

func (r *memoryOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

type memoryUoW struct {
	repo *memoryOrderRepo
}

func (u *memoryUoW) Begin(context.Context) error            { return nil }
func (u *memoryUoW) Commit(context.Context) error           { return nil }
func (u *memoryUoW) Rollback(context.Context) error         { return nil }
func (u *memoryUoW) OrderRepository() ports.OrderRepository { return u.repo }

type memoryUoWFactory struct {
	repo *memoryOrderRepo
}

func (f memoryUoWFactory) Create() commands.OrderUoW {
	return &memoryUoW{repo: f.repo}
}

type noopNotifier struct{}

func (noopNotifier) NotifyCreated(context.Context, *order.Order)    {}
func (noopNotifier) NotifyInRelease(context.Context, *order.Order)  {}
func (noopNotifier) NotifyReleased(context.Context, *order.Order)   {}
func (noopNotifier) NotifyInShipment(context.Context, *order.Order) {}
func (noopNotifier) NotifyShipped(context.Context, *order.Order)    {}
func (noopNotifier) NotifyDelivered(context.Context, *order.Order)  {}
func (noopNotifier) NotifyCancelled(context.Context, *order.Order)  {}

type stubGenerator struct {
	mu  sync.Mutex
	seq int
}

func (g *stubGenerator) Next(channel kernel.Channel) (kernel.OrderID, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return kernel.NewOrderID(channel, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), g.seq)
}

func newTestServer(t *testing.T) (*echo.Echo, *memoryOrderRepo) {
	t.Helper()

	repo := newMemoryOrderRepo()
	factory := memoryUoWFactory{repo: repo}
	notifier := noopNotifier{}

	server := NewServer(
		commands.NewCreateOrderCommandHandler(factory, &stubGenerator{}, notifier),
		commands.NewUpdateOrderCommandHandler(factory),
		commands.NewUpdateOrderStatusCommandHandler(factory, notifier),
		commands.NewUpdateLineStatusCommandHandler(factory),
		commands.NewDeleteOrderCommandHandler(factory, notifier),
		queries.GetOrderQueryHandler{},
		queries.ListOrdersQueryHandler{},
		queries.GetOrderSnapshotsQueryHandler{},
		queries.GetShipmentByTrackingQueryHandler{},
	)

	e := echo.New()
	servers.RegisterHandlersWithBaseURL(e, server, "/api/v1")
	return e, repo
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newOrderRequest() servers.NewOrder {
	return servers.NewOrder{
		CustomerId: "CUST-000123",
		OrderType:  "STANDARD",
		Channel:    "WEB",
		BillingAddress: servers.Address{
			FullName:     "Jordan Smith",
			AddressLine1: "500 Main St",
			City:         "Columbus",
			PostalCode:   "43004",
			Country:      "US",
		},
		OrderLines: []servers.NewOrderLine{
			{
				LineNumber:      1,
				ItemId:          1234567890,
				ItemName:        "Wireless Mouse",
				Quantity:        2,
				UnitPrice:       29.99,
				Currency:        "USD",
				TaxRate:         0.08,
				FulfillmentType: "STH",
				ShippingAddress: &servers.Address{
					FullName:     "Jordan Smith",
					AddressLine1: "500 Main St",
					City:         "Columbus",
					PostalCode:   "43004",
					Country:      "US",
				},
			},
		},
	}
}

// createOrder posts a valid order and returns its allocated number.
func createOrder(t *testing.T, e *echo.Echo) string {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/api/v1/orders", newOrderRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created servers.CreatedOrder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	return created.OrderNumber
}

func Test_Server_CreateOrder(t *testing.T) {
	e, repo := newTestServer(t)

	number := createOrder(t, e)
	assert.Regexp(t, regexp.MustCompile(`^10-20260301-\d{7}$`), number)

	aggregate, ok := repo.orders[number]
	require.True(t, ok)
	assert.Equal(t, "CUST-000123", aggregate.CustomerID())
	assert.Equal(t, order.StatusCreated, aggregate.Status())
	require.Len(t, aggregate.Lines(), 1)
}

func Test_Server_CreateOrder_MalformedBody(t *testing.T) {
	e, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_CreateOrder_UnknownChannel(t *testing.T) {
	e, _ := newTestServer(t)

	body := newOrderRequest()
	body.Channel = "CARRIER_PIGEON"

	rec := doJSON(t, e, http.MethodPost, "/api/v1/orders", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_CreateOrder_DuplicateExternalID(t *testing.T) {
	e, _ := newTestServer(t)

	body := newOrderRequest()
	external := kernel.NewUUID().String()
	body.ExternalOrderId = &external

	rec := doJSON(t, e, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, e, http.MethodPost, "/api/v1/orders", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_Server_UpdateOrderStatus(t *testing.T) {
	e, repo := newTestServer(t)
	number := createOrder(t, e)

	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/"+number+"/status",
		servers.OrderStatusUpdate{Status: "IN_RELEASE"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	assert.Equal(t, order.StatusInRelease, repo.orders[number].Status())
}

func Test_Server_UpdateOrderStatus_IllegalTransition(t *testing.T) {
	e, _ := newTestServer(t)
	number := createOrder(t, e)

	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/"+number+"/status",
		servers.OrderStatusUpdate{Status: "SHIPPED"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func Test_Server_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	e, _ := newTestServer(t)
	number := createOrder(t, e)

	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/"+number+"/status",
		servers.OrderStatusUpdate{Status: "TELEPORTED"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_UpdateOrderStatus_OrderNotFound(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/10-20260301-0009999/status",
		servers.OrderStatusUpdate{Status: "IN_RELEASE"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_Server_UpdateOrder_Notes(t *testing.T) {
	e, repo := newTestServer(t)
	number := createOrder(t, e)

	notes := "leave at door"
	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/"+number,
		servers.OrderUpdate{Notes: &notes})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	assert.Equal(t, "leave at door", repo.orders[number].Notes())
}

func Test_Server_UpdateOrder_EmptyBody(t *testing.T) {
	e, _ := newTestServer(t)
	number := createOrder(t, e)

	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/"+number, servers.OrderUpdate{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_UpdateLineStatus(t *testing.T) {
	e, repo := newTestServer(t)
	number := createOrder(t, e)

	lineID := repo.orders[number].Lines()[0].ID()
	rec := doJSON(t, e,
		http.MethodPatch, "/api/v1/orders/"+number+"/lines/"+lineID.String()+"/status",
		servers.LineStatusUpdate{Status: "ALLOCATED"})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	line, err := repo.orders[number].Line(lineID)
	require.NoError(t, err)
	assert.Equal(t, order.LineAllocated, line.LineStatus().Status())
}

func Test_Server_UpdateLineStatus_BadLineID(t *testing.T) {
	e, _ := newTestServer(t)
	number := createOrder(t, e)

	rec := doJSON(t, e, http.MethodPatch, "/api/v1/orders/"+number+"/lines/not-a-uuid/status",
		servers.LineStatusUpdate{Status: "ALLOCATED"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_Server_DeleteOrder_Cancels(t *testing.T) {
	e, repo := newTestServer(t)
	number := createOrder(t, e)

	rec := doJSON(t, e, http.MethodDelete, "/api/v1/orders/"+number, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// Soft delete: the order is kept with status CANCELLED.
	aggregate, ok := repo.orders[number]
	require.True(t, ok)
	assert.Equal(t, order.StatusCancelled, aggregate.Status())
}

func Test_Server_DeleteOrder_PastCancellation(t *testing.T) {
	e, repo := newTestServer(t)
	number := createOrder(t, e)

	aggregate := repo.orders[number]
	for _, transition := range []func(*order.Order) (*order.Order, error){
		(*order.Order).InRelease,
		(*order.Order).Release,
		(*order.Order).InShipment,
		(*order.Order).Ship,
	} {
		var err error
		aggregate, err = transition(aggregate)
		require.NoError(t, err)
	}
	repo.orders[number] = aggregate

	rec := doJSON(t, e, http.MethodDelete, "/api/v1/orders/"+number, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func Test_Server_MalformedOrderNumber(t *testing.T) {
	e, _ := newTestServer(t)

	for _, path := range []string{
		"/api/v1/orders/not-a-number",
		"/api/v1/orders/not-a-number/snapshots",
	} {
		rec := doJSON(t, e, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}
