package dto

import "time"

// LineItemResponse is a sold line.
type LineItemResponse struct {
	ID            string `json:"id"`
	VariantID     string `json:"variantId"`
	Quantity      int    `json:"quantity"`
	UnitPrice     Amount `json:"unitPrice"`
	UnitCostPrice Amount `json:"unitCostPrice"`
	Description   string `json:"description"`
	Status        string `json:"status"`
}

// PaymentResponse is a recorded payment.
type PaymentResponse struct {
	ID     string `json:"id"`
	Amount Amount `json:"amount"`
	Method string `json:"method"`
}

// OrderResponse mirrors an order with numeric amounts.
type OrderResponse struct {
	ID             string             `json:"id"`
	OrderNumber    string             `json:"orderNumber"`
	CustomerID     *string            `json:"customerId,omitempty"`
	StaffID        string             `json:"staffId"`
	LocationID     string             `json:"locationId"`
	Subtotal       Amount             `json:"subtotal"`
	ShippingFee    Amount             `json:"shippingFee"`
	DiscountKind   string             `json:"discountKind"`
	DiscountValue  Amount             `json:"discountValue"`
	DiscountAmount Amount             `json:"discountAmount"`
	LoyaltyValue   Amount             `json:"loyaltyValue"`
	PointsRedeemed int64              `json:"pointsRedeemed"`
	PointsEarned   int64              `json:"pointsEarned"`
	TotalAmount    Amount             `json:"totalAmount"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	Items          []LineItemResponse `json:"items,omitempty"`
	Payments       []PaymentResponse  `json:"payments,omitempty"`
}

// UpdateStatusRequest changes an order status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
