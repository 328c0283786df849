package domain

import "time"

type OrderSubmittedEvent struct {
	OrderID      string      `json:"order_id"`
	CustomerID   string      `json:"customer_id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	Total        int64       `json:"total"`
	QueueNumber  int         `json:"queue_number,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

type OrderStatusChangedEvent struct {
	OrderID       string        `json:"order_id"`
	OrderStatus   OrderStatus   `json:"order_status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Timestamp     time.Time     `json:"timestamp"`
}
