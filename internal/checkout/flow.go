package checkout

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/warungpos/storefront/internal/backend"
	"github.com/warungpos/storefront/internal/cart"
	"github.com/warungpos/storefront/internal/domain"
	"github.com/warungpos/storefront/internal/messaging"
)

// Flow packages a cart plus customer details into an order and hands it to
// the remote service. It never retries: a failed submission returns control
// to the caller with the cart untouched, and resubmission is the user's call.
type Flow struct {
	backend  *backend.Client
	producer *messaging.Producer
	logger   *slog.Logger
}

// NewFlow creates the submission flow. producer may be nil when event
// publishing is disabled.
func NewFlow(client *backend.Client, producer *messaging.Producer, logger *slog.Logger) *Flow {
	return &Flow{
		backend:  client,
		producer: producer,
		logger:   logger,
	}
}

// Input is what the checkout form collects. Either Phone or TableNumber must
// be present: phone for remote pickup orders, table for in-venue ones.
type Input struct {
	CustomerName  string
	Phone         string
	TableNumber   string
	Notes         string
	PaymentMethod domain.PaymentMethod
}

// Validate checks the form before any network call. The name check runs
// first; the phone-or-table rule only applies once a name is present.
func (in Input) Validate(lines []cart.Line) error {
	if strings.TrimSpace(in.CustomerName) == "" {
		return domain.NewValidationError("customerName", "Nama pelanggan harus diisi")
	}
	if strings.TrimSpace(in.Phone) == "" && strings.TrimSpace(in.TableNumber) == "" {
		return domain.NewValidationError("phone", "No. HP atau No. Meja harus diisi")
	}
	if len(lines) == 0 {
		return domain.NewValidationError("items", "Keranjang masih kosong")
	}
	if in.PaymentMethod != "" && !domain.ValidPaymentMethod(in.PaymentMethod) {
		return domain.NewValidationError("paymentMethod", "Metode pembayaran tidak valid")
	}
	return nil
}

// Submit validates, prices and submits the order. customer may be nil for
// guest checkout. On success the caller is expected to clear the cart; the
// flow itself never touches it, so nothing is lost on failure.
func (f *Flow) Submit(ctx context.Context, in Input, lines []cart.Line, customer *domain.Customer) (*backend.OrderConfirmation, error) {
	if err := in.Validate(lines); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ID:    line.ProductID,
			Name:  line.Name,
			Qty:   line.Quantity,
			Price: line.Price,
			Note:  line.Note,
		}
	}

	totals := PriceLines(lines)

	customerID := domain.GuestCustomerID
	customerPhone := strings.TrimSpace(in.Phone)
	if customer != nil {
		customerID = customer.ID
		if customerPhone == "" {
			customerPhone = customer.Phone
		}
	}
	if customerPhone == "" {
		customerPhone = "-"
	}

	method := in.PaymentMethod
	if method == "" {
		method = domain.PaymentMethodCOD
	}

	notes := in.Notes
	if table := strings.TrimSpace(in.TableNumber); table != "" {
		if notes != "" {
			notes = "Meja " + table + " - " + notes
		} else {
			notes = "Meja " + table
		}
	}

	conf, err := f.backend.CreateOrder(ctx, backend.CreateOrderRequest{
		CustomerID:    customerID,
		CustomerName:  in.CustomerName,
		CustomerPhone: customerPhone,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: method,
		Notes:         notes,
	})
	if err != nil {
		return nil, err
	}

	f.logger.Info("order submitted",
		"order_id", conf.OrderID,
		"customer_id", customerID,
		"total", totals.Total,
		"queue_number", conf.QueueNumber,
	)

	if f.producer != nil {
		event := domain.OrderSubmittedEvent{
			OrderID:      conf.OrderID,
			CustomerID:   customerID,
			CustomerName: in.CustomerName,
			Items:        items,
			Total:        totals.Total,
			QueueNumber:  conf.QueueNumber,
			Timestamp:    time.Now().UTC(),
		}
		if err := f.producer.Publish(ctx, conf.OrderID, event); err != nil {
			f.logger.Error("failed to publish order submitted event", "error", err, "order_id", conf.OrderID)
		}
	}

	return conf, nil
}
