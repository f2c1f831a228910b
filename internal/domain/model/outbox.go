package model

import (
	"encoding/json"
	"time"
)

// OutboxEvent is a notification written in the same transaction as the change it describes.
type OutboxEvent struct {
	ID        int64
	EventID   string
	Type      string
	Key       string
	Payload   json.RawMessage
	Attempts  int
	CreatedAt time.Time
	SentAt    *time.Time
}

// OrderSettledEvent is published once an order is committed.
type OrderSettledEvent struct {
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	LocationID  string  `json:"locationId"`
	StaffID     string  `json:"staffId"`
	CustomerID  *string `json:"customerId,omitempty"`
	Status      string  `json:"status"`
	Total       string  `json:"total"`
	Items       int     `json:"items"`
}

// EventOrderSettled is the type of events emitted by settlement.
const EventOrderSettled = "order.settled"
