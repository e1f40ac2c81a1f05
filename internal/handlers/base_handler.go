package handlers

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/validator"
	"jobhub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
	users     services.UserService
}

func NewBaseHandler(v *validator.Validator, users services.UserService) *BaseHandler {
	return &BaseHandler{
		validator: v,
		users:     users,
	}
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// GetAndAuthorizeUserID returns the authenticated caller's user id as set by
// the auth middleware.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (primitive.ObjectID, bool) {
	ctx := c.Request.Context()

	userIDVal, exists := c.Get("userID")
	if !exists {
		logger.CtxWarn(ctx, "Unauthorized access: userID not found in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return primitive.NilObjectID, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok || userIDStr == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return primitive.NilObjectID, false
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid user ID in context"))
		return primitive.NilObjectID, false
	}
	return userID, true
}

// CurrentActor resolves the authenticated caller including their role
// profile ids. Used by operations that check ownership.
func (h *BaseHandler) CurrentActor(c *gin.Context) (services.Actor, bool) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return services.Actor{}, false
	}

	user, err := h.users.FindOne(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return services.Actor{}, false
	}

	actor := services.Actor{
		UserID: userID,
		Role:   models.UserRole(user.Role),
	}
	if user.CustomerID != "" {
		if id, err := primitive.ObjectIDFromHex(user.CustomerID); err == nil {
			actor.CustomerID = &id
		}
	}
	if user.FreelancerID != "" {
		if id, err := primitive.ObjectIDFromHex(user.FreelancerID); err == nil {
			actor.FreelancerID = &id
		}
	}
	return actor, true
}

// ParseParamObjectID reads a path parameter as a document id.
func ParseParamObjectID(c *gin.Context, key string) (primitive.ObjectID, error) {
	valueStr := c.Param(key)
	if valueStr == "" {
		return primitive.NilObjectID, apperrors.NewBadRequestError("Missing required path parameter: " + key)
	}
	id, err := primitive.ObjectIDFromHex(valueStr)
	if err != nil {
		return primitive.NilObjectID, apperrors.NewBadRequestError("Invalid path parameter: " + key + " is not a valid id")
	}
	return id, nil
}
