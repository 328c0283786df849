package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/cart"
	"github.com/warungpos/storefront/internal/catalog"
	"github.com/warungpos/storefront/internal/checkout"
	"github.com/warungpos/storefront/internal/messaging"
	"github.com/warungpos/storefront/internal/session"
	"github.com/warungpos/storefront/internal/storefront"
	"github.com/warungpos/storefront/internal/telemetry"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime instrumentation", "error", err)
		os.Exit(1)
	}

	remoteAPIURL := os.Getenv("REMOTE_API_URL")
	if remoteAPIURL == "" {
		logger.Error("REMOTE_API_URL environment variable is required")
		os.Exit(1)
	}

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	client := backend.NewClient(remoteAPIURL, httpClient, logger)

	var sessionStore session.Store = session.NewMemoryStore()
	if postgresURL := os.Getenv("POSTGRES_URL"); postgresURL != "" {
		db, err := telemetry.OpenDB("postgres", postgresURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		if err := db.Ping(); err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}

		sessionStore = session.NewPostgresStore(db, logger)
	} else {
		logger.Warn("POSTGRES_URL not set, sessions won't survive restarts")
	}

	var producer *messaging.Producer
	if kafkaBrokers := os.Getenv("KAFKA_BROKERS"); kafkaBrokers != "" {
		brokers := strings.Split(kafkaBrokers, ",")
		producer = messaging.NewProducer(brokers, "order.submitted")
		defer func() { _ = producer.Close() }()
	}

	cat := catalog.New(client, logger)
	refreshCtx, stopRefresh := context.WithCancel(ctx)
	defer stopRefresh()
	go func() {
		if err := cat.Refresh(refreshCtx); err != nil {
			logger.Error("initial catalog refresh failed", "error", err)
		}
		cat.KeepFresh(refreshCtx, 5*time.Minute)
	}()

	handler := storefront.NewHandler(
		cat,
		cart.NewStore(),
		session.NewManager(sessionStore, client, logger),
		checkout.NewFlow(client, producer, logger),
		client,
		logger,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu/products", telemetry.WithHTTPRoute(handler.HandleProducts))
	mux.HandleFunc("GET /menu/categories", telemetry.WithHTTPRoute(handler.HandleCategories))
	mux.HandleFunc("GET /cart", telemetry.WithHTTPRoute(handler.HandleGetCart))
	mux.HandleFunc("DELETE /cart", telemetry.WithHTTPRoute(handler.HandleClearCart))
	mux.HandleFunc("POST /cart/items", telemetry.WithHTTPRoute(handler.HandleAddItem))
	mux.HandleFunc("DELETE /cart/items/{productId}", telemetry.WithHTTPRoute(handler.HandleRemoveItem))
	mux.HandleFunc("PUT /cart/items/{productId}/quantity", telemetry.WithHTTPRoute(handler.HandleSetQuantity))
	mux.HandleFunc("PUT /cart/items/{productId}/note", telemetry.WithHTTPRoute(handler.HandleUpdateNote))
	mux.HandleFunc("POST /auth/login", telemetry.WithHTTPRoute(handler.HandleLogin))
	mux.HandleFunc("POST /auth/register", telemetry.WithHTTPRoute(handler.HandleRegister))
	mux.HandleFunc("POST /auth/logout", telemetry.WithHTTPRoute(handler.HandleLogout))
	mux.HandleFunc("GET /auth/me", telemetry.WithHTTPRoute(handler.HandleMe))
	mux.HandleFunc("POST /checkout", telemetry.WithHTTPRoute(handler.HandleCheckout))
	mux.HandleFunc("GET /orders", telemetry.WithHTTPRoute(handler.HandleOrders))
	mux.HandleFunc("GET /orders/{orderId}/tracking", telemetry.WithHTTPRoute(handler.HandleTracking))
	mux.HandleFunc("GET /healthz", handler.HandleHealth)
	mux.Handle("GET /metrics", metricsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
