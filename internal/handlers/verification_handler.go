package handlers

import (
	"net/http"

	"mentormatch_backend/internal/middleware"
	"mentormatch_backend/internal/services"
	"mentormatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VerificationHandler struct {
	*BaseHandler
	verificationService services.VerificationService
}

func NewVerificationHandler(base *BaseHandler, verificationService services.VerificationService) *VerificationHandler {
	return &VerificationHandler{
		BaseHandler:         base,
		verificationService: verificationService,
	}
}

// RegisterRoutes регистрирует стаф-маршруты рассмотрения заявок
func (h *VerificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	verification := rg.Group("/verification")
	verification.Use(middleware.StaffMiddleware())
	{
		verification.GET("", h.ListRequests)
		verification.PATCH("/:id", h.Review)
	}
}

func (h *VerificationHandler) ListRequests(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	db := h.GetDB(c)

	response, err := h.verificationService.ListRequests(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *VerificationHandler) Review(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewVerificationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)

	request, err := h.verificationService.Review(db, reviewerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}
