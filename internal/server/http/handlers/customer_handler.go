package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gopos/internal/domain/model"
	"github.com/polkiloo/gopos/internal/server/http/dto"
)

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	facade CustomerFacade
}

// NewCustomerHandler constructs CustomerHandler.
func NewCustomerHandler(facade CustomerFacade) *CustomerHandler {
	return &CustomerHandler{facade: facade}
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.facade.Customers(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}

	resp := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		resp = append(resp, toCustomerResponse(&customers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.facade.Customer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	customer, err := h.facade.CreateCustomer(c.Request.Context(), toCustomer("", req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCustomerResponse(customer))
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req dto.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}

	customer, err := h.facade.UpdateCustomer(c.Request.Context(), toCustomer(c.Param("id"), req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCustomerResponse(customer))
}

func toCustomer(id string, req dto.CustomerRequest) model.Customer {
	return model.Customer{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, Address: req.Address}
}

func toCustomerResponse(c *model.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		LoyaltyPoints: c.LoyaltyPoints,
		CreatedAt:     c.CreatedAt,
	}
}
