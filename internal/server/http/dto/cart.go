package dto

// AddCartItemRequest adds a scanned SKU to the cart.
type AddCartItemRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// UpdateCartItemRequest changes a line quantity by Delta.
type UpdateCartItemRequest struct {
	Delta int `json:"delta"`
}

// CartLineResponse is one cart line.
type CartLineResponse struct {
	VariantID    string `json:"variantId"`
	SKU          string `json:"sku"`
	ProductName  string `json:"productName"`
	VariantLabel string `json:"variantLabel"`
	UnitPrice    Amount `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineTotal    Amount `json:"lineTotal"`
}

// CartResponse is the cart snapshot.
type CartResponse struct {
	Items    []CartLineResponse `json:"items"`
	Subtotal Amount             `json:"subtotal"`
}
