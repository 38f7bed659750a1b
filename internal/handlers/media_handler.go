package handlers

import (
	"net/http"

	"mentormatch_backend/internal/services"
	"mentormatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	*BaseHandler
	mediaService services.MediaService
}

func NewMediaHandler(base *BaseHandler, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		BaseHandler:  base,
		mediaService: mediaService,
	}
}

// RegisterRoutes регистрирует маршруты галереи
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	media := rg.Group("/media")
	{
		media.GET("/:userId", h.GetGallery)
		media.POST("/:userId", h.Upload)
		media.DELETE("/:userId/:mediaId", h.Delete)
	}
}

func (h *MediaHandler) GetGallery(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	response, err := h.mediaService.GetGallery(db, viewerID, c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Upload принимает multipart с файлом "file" и необязательной подписью "caption"
func (h *MediaHandler) Upload(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing 'file' part"))
		return
	}
	caption := c.PostForm("caption")

	db := h.GetDB(c)

	media, err := h.mediaService.Upload(db, viewerID, c.Param("userId"), file, caption)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, media)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	viewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)

	if err := h.mediaService.Delete(db, viewerID, c.Param("userId"), c.Param("mediaId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
