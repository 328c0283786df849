package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warungpos/storefront/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, server.Client(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNormalize(t *testing.T) {
	t.Run("modern envelope with data", func(t *testing.T) {
		data, err := normalize([]byte(`{"success":true,"data":{"items":[]}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"items":[]}` {
			t.Errorf("unexpected data: %s", data)
		}
	})

	t.Run("payload beside envelope fields", func(t *testing.T) {
		data, err := normalize([]byte(`{"success":true,"message":"ok","orderId":"ORD-1","queueNumber":7}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if payload["orderId"] != "ORD-1" {
			t.Errorf("expected orderId ORD-1, got %v", payload["orderId"])
		}
		if _, ok := payload["success"]; ok {
			t.Error("envelope field leaked into payload")
		}
	})

	t.Run("service-reported failure", func(t *testing.T) {
		_, err := normalize([]byte(`{"success":false,"message":"Nomor HP sudah terdaftar"}`))
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if svcErr.Message != "Nomor HP sudah terdaftar" {
			t.Errorf("unexpected message: %q", svcErr.Message)
		}
	})

	t.Run("failure without message", func(t *testing.T) {
		_, err := normalize([]byte(`{"success":false}`))
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if svcErr.Message != "unknown error" {
			t.Errorf("unexpected message: %q", svcErr.Message)
		}
	})

	t.Run("legacy status success", func(t *testing.T) {
		data, err := normalize([]byte(`{"status":"success","data":{"customer":{"id":"c1"}}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"customer":{"id":"c1"}}` {
			t.Errorf("unexpected data: %s", data)
		}
	})

	t.Run("legacy status success without data", func(t *testing.T) {
		data, err := normalize([]byte(`{"status":"success","orders":[]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Fatalf("failed to decode payload: %v", err)
		}
		if _, ok := payload["orders"]; !ok {
			t.Error("expected orders key in payload")
		}
	})

	t.Run("legacy status error", func(t *testing.T) {
		_, err := normalize([]byte(`{"status":"error","message":"Produk tidak ditemukan"}`))
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
	})

	t.Run("bare keyed payload", func(t *testing.T) {
		data, err := normalize([]byte(`{"items":[{"id":"p1"}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"items":[{"id":"p1"}]}` {
			t.Errorf("unexpected data: %s", data)
		}
	})

	t.Run("bare array payload", func(t *testing.T) {
		data, err := normalize([]byte(`[{"id":"p1"}]`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `[{"id":"p1"}]` {
			t.Errorf("unexpected data: %s", data)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		if _, err := normalize([]byte(`{"success":`)); err == nil {
			t.Error("expected error for malformed body")
		}
	})
}

func TestClient_Products(t *testing.T) {
	t.Run("sends action and decodes wrapped items", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			if req["action"] != "getPublicProducts" {
				t.Errorf("expected getPublicProducts action, got %v", req["action"])
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"items":[{"id":"p1","name":"Ayam Bakar","price":25000,"available":true}]}}`))
		})

		products, err := client.Products(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 1 || products[0].Name != "Ayam Bakar" {
			t.Errorf("unexpected products: %+v", products)
		}
	})

	t.Run("decodes bare array", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"id":"p1","name":"Es Teh","price":5000,"available":true}]`))
		})

		products, err := client.Products(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(products) != 1 || products[0].Price != 5000 {
			t.Errorf("unexpected products: %+v", products)
		}
	})

	t.Run("non-2xx status is a transport error", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Products(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		var svcErr *Error
		if errors.As(err, &svcErr) {
			t.Error("transport failure must not be a service error")
		}
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("returns customer on success", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			var req map[string]any
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req["action"] != "customerLogin" || req["phone"] != "0812" {
				t.Errorf("unexpected request: %v", req)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"customer":{"id":"c1","name":"Budi","phone":"0812"}}}`))
		})

		customer, err := client.Login(context.Background(), "0812", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if customer.ID != "c1" || customer.Name != "Budi" {
			t.Errorf("unexpected customer: %+v", customer)
		}
	})

	t.Run("surfaces service message", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"Password salah"}`))
		})

		_, err := client.Login(context.Background(), "0812", "wrong")
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected *Error, got %v", err)
		}
		if svcErr.Message != "Password salah" {
			t.Errorf("unexpected message: %q", svcErr.Message)
		}
	})
}

func TestClient_CreateOrder(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req["action"] != "createOnlineOrder" {
			t.Errorf("expected createOnlineOrder, got %v", req["action"])
		}
		if req["subtotal"] != float64(30000) || req["tax"] != float64(3300) || req["total"] != float64(33300) {
			t.Errorf("unexpected amounts: %v", req)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"orderId":"ORD-9","queueNumber":4,"estimatedTime":20,"paymentStatus":"PENDING","orderStatus":"PENDING","createdAt":"2026-08-28T10:00:00Z"}}`))
	})

	conf, err := client.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:    domain.GuestCustomerID,
		CustomerName:  "Budi",
		CustomerPhone: "0812",
		Items:         []domain.OrderItem{{ID: "p1", Name: "Ayam Bakar", Qty: 2, Price: 15000}},
		Subtotal:      30000,
		Tax:           3300,
		Total:         33300,
		PaymentMethod: domain.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.OrderID != "ORD-9" || conf.QueueNumber != 4 || conf.EstimatedTime != 20 {
		t.Errorf("unexpected confirmation: %+v", conf)
	}
}

func TestClient_Tracking(t *testing.T) {
	t.Run("wrapped order", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":{"order":{"orderId":"ORD-9","orderStatus":"COOKING","paymentStatus":"PAID"}}}`))
		})

		order, err := client.Tracking(context.Background(), "ORD-9")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if order.OrderStatus != domain.OrderStatusCooking {
			t.Errorf("unexpected status: %s", order.OrderStatus)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":{}}`))
		})

		if _, err := client.Tracking(context.Background(), "ORD-9"); err == nil {
			t.Error("expected error for missing order")
		}
	})
}

func TestClient_CustomerOrders(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["customerId"] != "c1" {
			t.Errorf("expected customerId c1, got %v", req["customerId"])
		}
		_, _ = w.Write([]byte(`{"orders":[{"orderId":"ORD-1","orderStatus":"COMPLETED"},{"orderId":"ORD-2","orderStatus":"PENDING"}]}`))
	})

	orders, err := client.CustomerOrders(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 || orders[0].OrderID != "ORD-1" {
		t.Errorf("unexpected orders: %+v", orders)
	}
}
