package handlers

import (
	"net/http"
	"strconv"

	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FreelancerHandler struct {
	*BaseHandler
	freelancerService services.FreelancerService
}

func NewFreelancerHandler(base *BaseHandler, freelancerService services.FreelancerService) *FreelancerHandler {
	return &FreelancerHandler{
		BaseHandler:       base,
		freelancerService: freelancerService,
	}
}

func (h *FreelancerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	freelancers := rg.Group("/freelancers")
	{
		freelancers.GET("", h.List)
		freelancers.GET("/:id", h.Get)
		freelancers.GET("/skill/:skillId", h.FilterBySkill)
		freelancers.GET("/salary", h.FilterBySalary)
	}

	me := rg.Group("/freelancers/me")
	me.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleFreelancer))
	{
		me.PATCH("/salary", h.UpdateSalary)
		me.PATCH("/skill/:skillId", h.AddSkill)
		me.DELETE("/skill/:skillId", h.RemoveSkill)
	}
}

func (h *FreelancerHandler) List(c *gin.Context) {
	freelancers, err := h.freelancerService.FindAll(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, freelancers)
}

func (h *FreelancerHandler) Get(c *gin.Context) {
	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	freelancer, err := h.freelancerService.FindOne(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, freelancer)
}

func (h *FreelancerHandler) FilterBySkill(c *gin.Context) {
	skillID, err := ParseParamObjectID(c, "skillId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	freelancers, err := h.freelancerService.FilterBySkill(c.Request.Context(), skillID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, freelancers)
}

// FilterBySalary filters by exactly one of the ?min= / ?max= query bounds.
func (h *FreelancerHandler) FilterBySalary(c *gin.Context) {
	minStr, maxStr := c.Query("min"), c.Query("max")

	switch {
	case minStr != "" && maxStr == "":
		min, err := strconv.ParseFloat(minStr, 64)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid min salary"))
			return
		}
		freelancers, err := h.freelancerService.FilterByMinSalary(c.Request.Context(), min)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, freelancers)
	case maxStr != "" && minStr == "":
		max, err := strconv.ParseFloat(maxStr, 64)
		if err != nil {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid max salary"))
			return
		}
		freelancers, err := h.freelancerService.FilterByMaxSalary(c.Request.Context(), max)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, freelancers)
	default:
		apperrors.HandleError(c, apperrors.NewBadRequestError("Provide exactly one of min or max"))
	}
}

func (h *FreelancerHandler) UpdateSalary(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}
	if actor.FreelancerID == nil {
		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	var req dto.UpdateSalaryRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.freelancerService.UpdateSalary(c.Request.Context(), *actor.FreelancerID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Salary updated"})
}

func (h *FreelancerHandler) AddSkill(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}
	if actor.FreelancerID == nil {
		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	skillID, err := ParseParamObjectID(c, "skillId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.freelancerService.AddSkill(c.Request.Context(), *actor.FreelancerID, skillID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill added"})
}

func (h *FreelancerHandler) RemoveSkill(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}
	if actor.FreelancerID == nil {
		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	skillID, err := ParseParamObjectID(c, "skillId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.freelancerService.RemoveSkill(c.Request.Context(), *actor.FreelancerID, skillID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill removed"})
}
