package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/cart"
	"github.com/warungpos/storefront/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func flowWithBackend(t *testing.T, handler http.HandlerFunc) *Flow {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewFlow(backend.NewClient(server.URL, server.Client(), discardLogger()), nil, discardLogger())
}

func someLines() []cart.Line {
	return []cart.Line{
		{ProductID: "p1", Name: "Ayam Bakar", Price: 15000, Quantity: 2},
	}
}

func TestInput_Validate(t *testing.T) {
	t.Run("name is checked before the phone-or-table rule", func(t *testing.T) {
		err := Input{}.Validate(someLines())
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if vErr.Message != "Nama pelanggan harus diisi" {
			t.Errorf("expected name message first, got %q", vErr.Message)
		}
	})

	t.Run("phone or table must be present", func(t *testing.T) {
		err := Input{CustomerName: "Budi"}.Validate(someLines())
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if vErr.Message != "No. HP atau No. Meja harus diisi" {
			t.Errorf("unexpected message: %q", vErr.Message)
		}

		if err := (Input{CustomerName: "Budi", Phone: "0812"}).Validate(someLines()); err != nil {
			t.Errorf("phone alone should pass, got %v", err)
		}
		if err := (Input{CustomerName: "Budi", TableNumber: "5"}).Validate(someLines()); err != nil {
			t.Errorf("table alone should pass, got %v", err)
		}
	})

	t.Run("empty cart is rejected", func(t *testing.T) {
		err := Input{CustomerName: "Budi", Phone: "0812"}.Validate(nil)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown payment method is rejected", func(t *testing.T) {
		err := Input{CustomerName: "Budi", Phone: "0812", PaymentMethod: "BITCOIN"}.Validate(someLines())
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestFlow_Submit(t *testing.T) {
	t.Run("validation failure makes no network call", func(t *testing.T) {
		called := false
		flow := flowWithBackend(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := flow.Submit(context.Background(), Input{}, someLines(), nil)
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if called {
			t.Error("validation failure must not reach the backend")
		}
	})

	t.Run("guest order carries computed totals", func(t *testing.T) {
		var got map[string]any
		flow := flowWithBackend(t, func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			_, _ = w.Write([]byte(`{"success":true,"data":{"orderId":"ORD-1","queueNumber":3,"estimatedTime":15,"paymentStatus":"PENDING","orderStatus":"PENDING","createdAt":"2026-08-28T09:00:00Z"}}`))
		})

		conf, err := flow.Submit(context.Background(), Input{
			CustomerName: "Budi",
			Phone:        "0812",
		}, someLines(), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if conf.OrderID != "ORD-1" || conf.QueueNumber != 3 {
			t.Errorf("unexpected confirmation: %+v", conf)
		}
		if got["customerId"] != domain.GuestCustomerID {
			t.Errorf("expected guest customer id, got %v", got["customerId"])
		}
		if got["subtotal"] != float64(30000) || got["tax"] != float64(3300) || got["total"] != float64(33300) {
			t.Errorf("unexpected amounts: subtotal=%v tax=%v total=%v", got["subtotal"], got["tax"], got["total"])
		}
		if got["paymentMethod"] != "COD" {
			t.Errorf("expected COD default, got %v", got["paymentMethod"])
		}
	})

	t.Run("authenticated customer fills id and phone", func(t *testing.T) {
		var got map[string]any
		flow := flowWithBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&got)
			_, _ = w.Write([]byte(`{"success":true,"data":{"orderId":"ORD-2","queueNumber":1,"estimatedTime":10,"paymentStatus":"PENDING","orderStatus":"PENDING","createdAt":"2026-08-28T09:00:00Z"}}`))
		})

		customer := &domain.Customer{ID: "c1", Name: "Budi", Phone: "0899"}
		_, err := flow.Submit(context.Background(), Input{
			CustomerName: "Budi",
			TableNumber:  "5",
		}, someLines(), customer)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got["customerId"] != "c1" {
			t.Errorf("expected customer id c1, got %v", got["customerId"])
		}
		if got["customerPhone"] != "0899" {
			t.Errorf("expected stored phone fallback, got %v", got["customerPhone"])
		}
		if got["notes"] != "Meja 5" {
			t.Errorf("expected table note, got %v", got["notes"])
		}
	})

	t.Run("service rejection surfaces its message", func(t *testing.T) {
		flow := flowWithBackend(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"Stok tidak cukup"}`))
		})

		_, err := flow.Submit(context.Background(), Input{CustomerName: "Budi", Phone: "0812"}, someLines(), nil)
		var svcErr *backend.Error
		if !errors.As(err, &svcErr) {
			t.Fatalf("expected backend error, got %v", err)
		}
		if svcErr.Message != "Stok tidak cukup" {
			t.Errorf("unexpected message: %q", svcErr.Message)
		}
	})

	t.Run("transport failure is a plain error", func(t *testing.T) {
		flow := flowWithBackend(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := flow.Submit(context.Background(), Input{CustomerName: "Budi", Phone: "0812"}, someLines(), nil)
		if err == nil {
			t.Fatal("expected error")
		}
		var svcErr *backend.Error
		if errors.As(err, &svcErr) {
			t.Error("transport failure must not be a service error")
		}
	})
}
