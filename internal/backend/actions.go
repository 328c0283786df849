package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/warungpos/storefront/internal/domain"
)

// Products fetches the public menu.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	data, err := c.call(ctx, "getPublicProducts", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](data, "items")
}

// Categories fetches the public category list.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	data, err := c.call(ctx, "getPublicCategories", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Category](data, "categories")
}

// Login authenticates a customer by phone and password.
func (c *Client) Login(ctx context.Context, phone, password string) (*domain.Customer, error) {
	data, err := c.call(ctx, "customerLogin", map[string]any{
		"phone":    phone,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	return decodeCustomer(data)
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Register creates a customer account and returns the stored record.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.Customer, error) {
	params := map[string]any{
		"name":     req.Name,
		"phone":    req.Phone,
		"password": req.Password,
	}
	if req.Email != "" {
		params["email"] = req.Email
	}
	if req.Address != "" {
		params["address"] = req.Address
	}

	data, err := c.call(ctx, "customerRegister", params)
	if err != nil {
		return nil, err
	}
	return decodeCustomer(data)
}

type CreateOrderRequest struct {
	CustomerID    string               `json:"customerId"`
	CustomerName  string               `json:"customerName"`
	CustomerPhone string               `json:"customerPhone"`
	Items         []domain.OrderItem   `json:"items"`
	Subtotal      int64                `json:"subtotal"`
	Tax           int64                `json:"tax"`
	Total         int64                `json:"total"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	Notes         string               `json:"notes,omitempty"`
}

// OrderConfirmation is what the remote service assigns at order creation.
type OrderConfirmation struct {
	OrderID       string               `json:"orderId"`
	QueueNumber   int                  `json:"queueNumber"`
	EstimatedTime int                  `json:"estimatedTime"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	OrderStatus   domain.OrderStatus   `json:"orderStatus"`
	CreatedAt     string               `json:"createdAt"`
}

// CreateOrder submits a fully priced order.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderConfirmation, error) {
	params := map[string]any{
		"customerId":    req.CustomerID,
		"customerName":  req.CustomerName,
		"customerPhone": req.CustomerPhone,
		"items":         req.Items,
		"subtotal":      req.Subtotal,
		"tax":           req.Tax,
		"total":         req.Total,
		"paymentMethod": req.PaymentMethod,
	}
	if req.Notes != "" {
		params["notes"] = req.Notes
	}

	data, err := c.call(ctx, "createOnlineOrder", params)
	if err != nil {
		return nil, err
	}

	var conf OrderConfirmation
	if err := json.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("decode order confirmation: %w", err)
	}
	if conf.OrderID == "" {
		return nil, fmt.Errorf("order confirmation missing orderId")
	}
	return &conf, nil
}

// CustomerOrders fetches the order history for a customer.
func (c *Client) CustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	data, err := c.call(ctx, "getOnlineOrders", map[string]any{"customerId": customerID})
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Order](data, "orders")
}

// Tracking fetches the current state of one order. No auth required; the
// order id is the capability.
func (c *Client) Tracking(ctx context.Context, orderID string) (*domain.Order, error) {
	data, err := c.call(ctx, "getOrderTracking", map[string]any{"orderId": orderID})
	if err != nil {
		return nil, err
	}

	var wrapped struct {
		Order *domain.Order `json:"order"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Order != nil {
		return wrapped.Order, nil
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil || order.OrderID == "" {
		return nil, fmt.Errorf("tracking response missing order")
	}
	return &order, nil
}

// decodeList accepts both {"<key>": [...]} wrappers and bare arrays.
func decodeList[T any](data json.RawMessage, key string) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapped); err == nil {
		inner, ok := wrapped[key]
		if !ok {
			return nil, nil
		}
		data = inner
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", key, err)
	}
	return list, nil
}

func decodeCustomer(data json.RawMessage) (*domain.Customer, error) {
	var wrapped struct {
		Customer *domain.Customer `json:"customer"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Customer != nil {
		return wrapped.Customer, nil
	}

	var customer domain.Customer
	if err := json.Unmarshal(data, &customer); err != nil || customer.ID == "" {
		return nil, fmt.Errorf("response missing customer")
	}
	return &customer, nil
}
