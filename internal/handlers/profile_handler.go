package handlers

import (
	"encoding/json"
	"mime/multipart"
	"net/http"
	"strings"

	"mentormatch_backend/internal/services"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

// RegisterRoutes регистрирует маршруты профиля (группа уже защищена AuthMiddleware)
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.GetProfile)
	rg.PATCH("/profile/update", h.UpdateProfile)
	rg.GET("/users/:id", h.GetUser)

	account := rg.Group("/account")
	{
		account.POST("/deletion", h.ScheduleDeletion)
		account.DELETE("/deletion", h.CancelDeletion)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.profileService.GetProfile(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile принимает либо JSON-тело, либо multipart с частью "data"
// (JSON-патч) и необязательным файлом "document" для верификации.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	var document *multipart.FileHeader

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		data := c.PostForm("data")
		if data != "" {
			if err := json.Unmarshal([]byte(data), &req); err != nil {
				apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid 'data' part: "+err.Error()))
				return
			}
		}
		if !h.validate(c, &req) {
			return
		}

		fh, err := c.FormFile("document")
		if err == nil {
			document = fh
		}
	} else {
		if !h.BindAndValidate_JSON(c, &req) {
			return
		}
	}

	db := h.GetDB(c)

	profile, err := h.profileService.UpdateProfile(db, userID, &req, document)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	targetID := c.Param("id")
	db := h.GetDB(c)

	profile, err := h.profileService.GetUser(db, userID, targetID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ScheduleDeletion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.profileService.ScheduleDeletion(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CancelDeletion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	profile, err := h.profileService.CancelDeletion(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
