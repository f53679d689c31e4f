package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports/mocks"
	rest "github.com/Gunvolt24/grocery/internal/transport/http"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

type orderJSON struct {
	ID       int               `json:"id"`
	Products map[string]string `json:"products"`
	Subtotal string            `json:"subtotal"`
	Tax      string            `json:"tax"`
	Total    string            `json:"total"`
}

func newOrder(id int) *domain.Order {
	return domain.NewOrder(id, map[string]decimal.Decimal{
		"banana":  decimal.RequireFromString("1.99"),
		"cracker": decimal.RequireFromString("3.00"),
	})
}

func newRouter(t *testing.T) (*mocks.MockOrderReadService, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockOrderReadService(ctrl)
	h := rest.NewHandler(svc, noopLogger{}, 0)
	return svc, rest.NewRouter(h, "", "")
}

func serve(r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetOrder_Found(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().GetOrder(gomock.Any(), 1).Return(newOrder(1), nil)

	w := serve(r, http.MethodGet, "/order/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got orderJSON
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.ID != 1 || len(got.Products) != 2 {
		t.Fatalf("wrong order: %+v", got)
	}
	if got.Subtotal != "4.99" || got.Tax != "0.37" || got.Total != "5.36" {
		t.Fatalf("wrong totals: %+v", got)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("X-Request-ID must be set")
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().GetOrder(gomock.Any(), 101).Return(nil, fmt.Errorf("find order id=101: %w", domain.ErrOrderNotFound))

	w := serve(r, http.MethodGet, "/order/101", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetOrder_BadID(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().GetOrder(gomock.Any(), gomock.Any()).Times(0)

	for _, path := range []string{"/order/abc", "/order/0", "/order/-4"} {
		w := serve(r, http.MethodGet, path, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: want 400, got %d", path, w.Code)
		}
	}
}

func TestGetOrder_InternalError(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().GetOrder(gomock.Any(), 5).Return(nil, fmt.Errorf("line 2: %w", domain.ErrMalformedFixture))

	w := serve(r, http.MethodGet, "/order/5", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestListOrders_OK_Default(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().ListOrders(gomock.Any(), 20, 0).Return([]*domain.Order{newOrder(1), newOrder(2)}, nil)

	w := serve(r, http.MethodGet, "/orders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}
	var got []orderJSON
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestListOrders_OK_WithParams(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().ListOrders(gomock.Any(), 3, 7).Return([]*domain.Order{}, nil)

	w := serve(r, http.MethodGet, "/orders?limit=3&offset=7", nil)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("want 200 [], got %d %s", w.Code, w.Body.String())
	}
}

func TestListOrders_ServiceError(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().ListOrders(gomock.Any(), 20, 0).Return(nil, errors.New("open fixture: denied"))

	w := serve(r, http.MethodGet, "/orders", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}
}

func TestQuote_OK(t *testing.T) {
	svc, r := newRouter(t)

	o := newOrder(1)
	svc.EXPECT().Quote(gomock.Any(), 1, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int, req domain.QuoteRequest) (*domain.Quote, error) {
			if !req.Add["salad"].Equal(decimal.RequireFromString("4.25")) || len(req.Remove) != 1 {
				t.Errorf("unexpected request: %+v", req)
			}
			return domain.ApplyQuote(o, req), nil
		})

	body := []byte(`{"add":{"salad":"4.25"},"remove":["banana"]}`)
	w := serve(r, http.MethodPost, "/order/1/quote", body)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var got struct {
		Order      orderJSON `json:"order"`
		Added      []string  `json:"added"`
		Duplicates []string  `json:"duplicates"`
		Removed    []string  `json:"removed"`
		Missing    []string  `json:"missing"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	// cracker 3.00 + salad 4.25 = 7.25; налог 0.54375 → 0.54
	if got.Order.Total != "7.79" {
		t.Fatalf("want total 7.79, got %+v", got.Order)
	}
	if len(got.Added) != 1 || len(got.Removed) != 1 || got.Duplicates == nil || got.Missing == nil {
		t.Fatalf("unexpected outcome: %+v", got)
	}
}

func TestQuote_BadRequest(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().Quote(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	cases := map[string]string{
		"invalid json":   `{"add":`,
		"negative price": `{"add":{"salad":"-1"}}`,
		"blank name":     `{"add":{" ":"1"}}`,
	}
	for name, body := range cases {
		w := serve(r, http.MethodPost, "/order/1/quote", []byte(body))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: want 400, got %d", name, w.Code)
		}
	}
}

func TestQuote_NotFound(t *testing.T) {
	svc, r := newRouter(t)
	svc.EXPECT().Quote(gomock.Any(), 107, gomock.Any()).Return(nil, domain.ErrOrderNotFound)

	w := serve(r, http.MethodPost, "/order/107/quote", []byte(`{}`))
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}

func TestNoRoute_404(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/no-such-route", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestMethodNotAllowed_405(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodPost, "/order/123", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d, body=%s", w.Code, w.Body.String())
	}
	if allow := w.Header().Get("Allow"); allow != "GET" {
		t.Fatalf("want Allow: GET, got %q", allow)
	}
}

func TestPing_200(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("want 200 pong, got %d %q", w.Code, w.Body.String())
	}
}

func TestMetrics_200(t *testing.T) {
	_, r := newRouter(t)

	w := serve(r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	// Содержимое может меняться — достаточно проверить, что не пусто.
	if w.Body.Len() == 0 {
		t.Fatal("metrics body is empty")
	}
}
