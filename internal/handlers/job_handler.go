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

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/job")
	{
		jobs.GET("", h.List)
		jobs.GET("/:id", h.Get)
		jobs.GET("/status/:status", h.ByStatus)
		jobs.GET("/user/:userId", h.ByUser)
	}

	protected := rg.Group("/job")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", middleware.RequireRoles(models.UserRoleCustomer), h.Create)
		protected.PATCH("/:id", h.Update)
		protected.PATCH("/:id/skills", h.AddSkills)
		protected.DELETE("/:id/skills/:skillId", h.RemoveSkill)
		protected.POST("/:id/request", middleware.RequireRoles(models.UserRoleFreelancer), h.Apply)
		protected.DELETE("/:id/request/:freelancerId", h.DeleteApplication)
		protected.PATCH("/:id/assign/:freelancerId", h.Assign)
		protected.PATCH("/:id/status", h.UpdateStatus)
		protected.PATCH("/:id/feedback", middleware.RequireRoles(models.UserRoleCustomer), h.Feedback)
		protected.PATCH("/:id/block", middleware.RequireRoles(models.UserRoleAdmin), h.ToggleBlock)
		protected.DELETE("/:id", h.Remove)
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Create(c.Request.Context(), actor, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobService.FindAll(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	job, err := h.jobService.FindOne(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ByStatus(c *gin.Context) {
	statusInt, err := strconv.Atoi(c.Param("status"))
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid status"))
		return
	}

	jobs, err := h.jobService.FindByStatus(c.Request.Context(), models.JobStatus(statusInt))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) ByUser(c *gin.Context) {
	userID, err := ParseParamObjectID(c, "userId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	jobs, err := h.jobService.FindByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Update(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.Update(c.Request.Context(), actor, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) AddSkills(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.AddSkillsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.AddSkills(c.Request.Context(), actor, id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skills added"})
}

func (h *JobHandler) RemoveSkill(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	skillID, err := ParseParamObjectID(c, "skillId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.jobService.RemoveSkill(c.Request.Context(), actor, id, skillID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Skill removed"})
}

func (h *JobHandler) Apply(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.jobService.RequestFreelancer(c.Request.Context(), actor, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application filed"})
}

func (h *JobHandler) DeleteApplication(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	freelancerID, err := ParseParamObjectID(c, "freelancerId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.jobService.DeleteFreelancerRequest(c.Request.Context(), actor, id, freelancerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application removed"})
}

func (h *JobHandler) Assign(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	freelancerID, err := ParseParamObjectID(c, "freelancerId")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.jobService.AssignFreelancer(c.Request.Context(), actor, id, freelancerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Freelancer assigned"})
}

func (h *JobHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.UpdateStatus(c.Request.Context(), actor, id, models.JobStatus(*req.Status)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

func (h *JobHandler) Feedback(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.JobFeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.jobService.AddFeedback(c.Request.Context(), actor, id, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback saved"})
}

func (h *JobHandler) ToggleBlock(c *gin.Context) {
	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.jobService.ToggleBlock(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Block toggled"})
}

func (h *JobHandler) Remove(c *gin.Context) {
	actor, ok := h.CurrentActor(c)
	if !ok {
		return
	}

	id, err := ParseParamObjectID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.jobService.Remove(c.Request.Context(), actor, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}
