package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/server/http/dto"
)

const reportDateLayout = "2006-01-02"

// ReportHandler serves back-office sales reports.
type ReportHandler struct {
	facade ReportFacade
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(facade ReportFacade) *ReportHandler {
	return &ReportHandler{facade: facade}
}

// Sales handles GET /api/reports/sales?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *ReportHandler) Sales(c *gin.Context) {
	period, ok := reportPeriod(c)
	if !ok {
		return
	}

	report, err := h.facade.SalesReport(c.Request.Context(), period)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.SalesReportResponse{
		From:          report.Period.From,
		To:            report.Period.To,
		OrderCount:    report.OrderCount,
		Revenue:       dto.NewAmount(report.Revenue),
		DiscountTotal: dto.NewAmount(report.DiscountTotal),
		ShippingTotal: dto.NewAmount(report.ShippingTotal),
		LoyaltyTotal:  dto.NewAmount(report.LoyaltyTotal),
		ItemsSold:     report.ItemsSold,
		GrossSales:    dto.NewAmount(report.GrossSales),
		CostOfGoods:   dto.NewAmount(report.CostOfGoods),
		GrossMargin:   dto.NewAmount(report.GrossMargin),
		Days:          make([]dto.DailySalesResponse, 0, len(report.Days)),
	}
	for _, d := range report.Days {
		resp.Days = append(resp.Days, dto.DailySalesResponse{
			Date:       d.Day.Format(reportDateLayout),
			OrderCount: d.OrderCount,
			Revenue:    dto.NewAmount(d.Revenue),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// TopProducts handles GET /api/reports/top-products.
func (h *ReportHandler) TopProducts(c *gin.Context) {
	period, ok := reportPeriod(c)
	if !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			badRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	products, err := h.facade.TopProducts(c.Request.Context(), period, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.ProductSalesResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductSalesResponse{ProductName: p.ProductName, Quantity: p.Quantity, Revenue: dto.NewAmount(p.Revenue)})
	}
	c.JSON(http.StatusOK, resp)
}

// reportPeriod reads inclusive from/to dates. The end day is included in full.
func reportPeriod(c *gin.Context) (model.ReportPeriod, bool) {
	var period model.ReportPeriod
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(reportDateLayout, raw)
		if err != nil {
			badRequest(c, "from must be a date in YYYY-MM-DD format")
			return period, false
		}
		period.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(reportDateLayout, raw)
		if err != nil {
			badRequest(c, "to must be a date in YYYY-MM-DD format")
			return period, false
		}
		period.To = to.AddDate(0, 0, 1)
	}
	return period, true
}
