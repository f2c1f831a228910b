package dto

// CheckoutItem is a line of an explicit checkout request.
type CheckoutItem struct {
	VariantID     string `json:"variantId"`
	Quantity      int    `json:"quantity"`
	UnitPrice     Amount `json:"unitPrice"`
	UnitCostPrice Amount `json:"unitCostPrice"`
	Description   string `json:"description"`
}

// PaymentRequest is the tender offered at checkout.
type PaymentRequest struct {
	Amount   Amount `json:"amount"`
	Method   string `json:"method"`
	Received Amount `json:"received"`
}

// DiscountRequest is a sale-wide discount.
type DiscountRequest struct {
	Kind  string `json:"kind"`
	Value Amount `json:"value"`
}

// CheckoutRequest settles a sale. Items are ignored when checking out the cart.
type CheckoutRequest struct {
	LocationID            string           `json:"locationId"`
	CustomerID            *string          `json:"customerId"`
	Items                 []CheckoutItem   `json:"items"`
	Payments              []PaymentRequest `json:"payments"`
	ShippingFee           Amount           `json:"shippingFee"`
	Discount              *DiscountRequest `json:"discount"`
	LoyaltyPointsToRedeem int64            `json:"loyaltyPointsToRedeem"`
	RequestedStatus       string           `json:"requestedStatus"`
}

// CheckoutResponse is the committed order and the change to hand back.
type CheckoutResponse struct {
	Order  OrderResponse `json:"order"`
	Change Amount        `json:"change"`
}
