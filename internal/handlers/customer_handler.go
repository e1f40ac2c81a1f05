package handlers

import (
	"net/http"

	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	*BaseHandler
	customerService services.CustomerService
}

func NewCustomerHandler(base *BaseHandler, customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		BaseHandler:     base,
		customerService: customerService,
	}
}

func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.List)
		customers.GET("/:id", h.Get)
		customers.GET("/:id/jobs", h.Jobs)
	}

	admin := rg.Group("/customers")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/:id/blocked", h.BlockedJobs)
	}
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.FindAll(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	customer, err := h.customerService.FindOne(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Jobs(c *gin.Context) {
	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	jobs, err := h.customerService.Jobs(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *CustomerHandler) BlockedJobs(c *gin.Context) {
	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	jobs, err := h.customerService.BlockedJobs(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}
