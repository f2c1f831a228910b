package dto

import "time"

// DailySalesResponse is one day of the sales report.
type DailySalesResponse struct {
	Date       string `json:"date"`
	OrderCount int64  `json:"orderCount"`
	Revenue    Amount `json:"revenue"`
}

// SalesReportResponse summarises revenue and margin over a period.
type SalesReportResponse struct {
	From          time.Time            `json:"from"`
	To            time.Time            `json:"to"`
	OrderCount    int64                `json:"orderCount"`
	Revenue       Amount               `json:"revenue"`
	DiscountTotal Amount               `json:"discountTotal"`
	ShippingTotal Amount               `json:"shippingTotal"`
	LoyaltyTotal  Amount               `json:"loyaltyTotal"`
	ItemsSold     int64                `json:"itemsSold"`
	GrossSales    Amount               `json:"grossSales"`
	CostOfGoods   Amount               `json:"costOfGoods"`
	GrossMargin   Amount               `json:"grossMargin"`
	Days          []DailySalesResponse `json:"days"`
}

// ProductSalesResponse is a product ranked by units sold.
type ProductSalesResponse struct {
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Revenue     Amount `json:"revenue"`
}
