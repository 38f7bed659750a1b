package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"mentormatch_backend/internal/logger"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/internal/storage"
	"mentormatch_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MediaService interface {
	GetGallery(db *gorm.DB, viewerID, ownerID string) (*dto.MediaListResponse, error)
	Upload(db *gorm.DB, viewerID, ownerID string, file *multipart.FileHeader, caption string) (*dto.MediaDTO, error)
	Delete(db *gorm.DB, viewerID, ownerID, mediaID string) error
}

type mediaService struct {
	userRepo  repositories.UserRepository
	swipeRepo repositories.SwipeRepository
	mediaRepo repositories.MediaRepository
	storage   storage.Storage
}

func NewMediaService(
	userRepo repositories.UserRepository,
	swipeRepo repositories.SwipeRepository,
	mediaRepo repositories.MediaRepository,
	store storage.Storage,
) MediaService {
	return &mediaService{
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
		mediaRepo: mediaRepo,
		storage:   store,
	}
}

// GetGallery возвращает галерею пользователя. Доступна владельцу
// и пользователям, имеющим с ним матч; всем прочим отдаем пустой
// список - по той же схеме, что и с сообщениями, без раскрытия
// существования контента.
func (s *mediaService) GetGallery(db *gorm.DB, viewerID, ownerID string) (*dto.MediaListResponse, error) {
	if _, err := s.userRepo.FindByID(db, ownerID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if viewerID != ownerID {
		matched, err := s.swipeRepo.MatchExists(db, viewerID, ownerID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !matched {
			return &dto.MediaListResponse{Media: []dto.MediaDTO{}}, nil
		}
	}

	items, err := s.mediaRepo.FindByUser(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.MediaDTO, 0, len(items))
	for i := range items {
		result = append(result, dto.NewMediaDTO(&items[i]))
	}
	return &dto.MediaListResponse{Media: result}, nil
}

// Upload загружает файл в собственную галерею. Лимит размера и
// допустимые типы заданы в конфиге, тип медиа выводится из Content-Type.
func (s *mediaService) Upload(db *gorm.DB, viewerID, ownerID string, file *multipart.FileHeader, caption string) (*dto.MediaDTO, error) {
	if viewerID != ownerID {
		return nil, apperrors.ErrForeignGallery
	}

	if err := validateMediaUpload(file); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	path := fmt.Sprintf("media/%s/%s%s", ownerID, uuid.New().String(), filepath.Ext(file.Filename))

	ctx := context.Background()
	if err := s.storage.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url, err := s.storage.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	metadata, _ := json.Marshal(map[string]string{"original_filename": file.Filename})

	media := &models.Media{
		UserID:    ownerID,
		Path:      path,
		URL:       url,
		MediaType: inferMediaType(contentType),
		Caption:   caption,
		MimeType:  contentType,
		Size:      file.Size,
		Metadata:  metadata,
	}
	if err := s.mediaRepo.Create(db, media); err != nil {
		// Файл уже записан; запись в БД не удалась - подчищаем
		_ = s.storage.Delete(ctx, path)
		return nil, apperrors.InternalError(err)
	}

	result := dto.NewMediaDTO(media)
	return &result, nil
}

// Delete убирает файл из собственной галереи. Сначала запись в БД,
// затем сам файл: осиротевший файл безвреднее битой ссылки.
func (s *mediaService) Delete(db *gorm.DB, viewerID, ownerID, mediaID string) error {
	if viewerID != ownerID {
		return apperrors.ErrForeignGallery
	}

	media, err := s.mediaRepo.FindByID(db, mediaID)
	if err != nil {
		if errors.Is(err, repositories.ErrMediaNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if media.UserID != ownerID {
		return apperrors.ErrNotFound(repositories.ErrMediaNotFound)
	}

	if err := s.mediaRepo.Delete(db, mediaID); err != nil {
		return apperrors.InternalError(err)
	}

	ctx := context.Background()
	if err := s.storage.Delete(ctx, media.Path); err != nil {
		logger.Warn("failed to delete media file from storage", "path", media.Path, "error", err)
	}
	return nil
}
