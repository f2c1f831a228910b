package dto

// VariantResponse is a resolved SKU.
type VariantResponse struct {
	VariantID     string `json:"variantId"`
	SKU           string `json:"sku"`
	ProductName   string `json:"productName"`
	VariantLabel  string `json:"variantLabel"`
	UnitPrice     Amount `json:"unitPrice"`
	UnitCostPrice Amount `json:"unitCostPrice"`
	TotalStock    int    `json:"totalStock"`
}

// SKUResponse carries a freshly generated SKU.
type SKUResponse struct {
	SKU string `json:"sku"`
}
