package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"mentormatch_backend/internal/logger"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/internal/storage"
	"mentormatch_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(db *gorm.DB, userID string) (*dto.UserProfileDTO, error)
	GetUser(db *gorm.DB, viewerID, targetID string) (*dto.UserProfileDTO, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest, document *multipart.FileHeader) (*dto.UserProfileDTO, error)
	ScheduleDeletion(db *gorm.DB, userID string) (*dto.UserProfileDTO, error)
	CancelDeletion(db *gorm.DB, userID string) (*dto.UserProfileDTO, error)
}

type profileService struct {
	userRepo         repositories.UserRepository
	tagRepo          repositories.TagRepository
	tokenRepo        repositories.RefreshTokenRepository
	verificationRepo repositories.VerificationRepository
	storage          storage.Storage
}

func NewProfileService(
	userRepo repositories.UserRepository,
	tagRepo repositories.TagRepository,
	tokenRepo repositories.RefreshTokenRepository,
	verificationRepo repositories.VerificationRepository,
	store storage.Storage,
) ProfileService {
	return &profileService{
		userRepo:         userRepo,
		tagRepo:          tagRepo,
		tokenRepo:        tokenRepo,
		verificationRepo: verificationRepo,
		storage:          store,
	}
}

func (s *profileService) GetProfile(db *gorm.DB, userID string) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	profile := dto.NewUserProfileDTO(user, true)
	return &profile, nil
}

// GetUser возвращает чужой профиль с учетом флагов видимости.
func (s *profileService) GetUser(db *gorm.DB, viewerID, targetID string) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.FindByID(db, targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	profile := dto.NewUserProfileDTO(user, viewerID == targetID)
	return &profile, nil
}

// UpdateProfile применяет частичный патч профиля. Отдельно:
//   - навыки/хобби проходят через реестр тегов (upsert по имени),
//     затем ассоциации заменяются целиком;
//   - документ от профессионала создает pending-заявку на верификацию
//     и сбрасывает is_verified.
func (s *profileService) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest, document *multipart.FileHeader) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.checkEmailAvailable(db, user, req.Email); err != nil {
		return nil, err
	}

	fields, err := buildProfilePatch(req)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.applyTagPatch(db, user, req); err != nil {
		return nil, err
	}

	if document != nil && user.Role == models.UserRoleProfessional {
		if err := s.submitVerificationDocument(db, user, document); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(db, userID)
}

func buildProfilePatch(req *dto.UpdateProfileRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.State != nil {
		fields["state"] = *req.State
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Theme != nil {
		fields["theme"] = *req.Theme
	}
	if req.ShowPhone != nil {
		fields["show_phone"] = *req.ShowPhone
	}
	if req.ShowEmail != nil {
		fields["show_email"] = *req.ShowEmail
	}
	if req.ShowAge != nil {
		fields["show_age"] = *req.ShowAge
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			fields["date_of_birth"] = nil
		} else {
			dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
			if err != nil {
				return nil, apperrors.NewBadRequestError("Invalid date_of_birth format. Use YYYY-MM-DD")
			}
			fields["date_of_birth"] = dob
		}
	}

	return fields, nil
}

// checkEmailAvailable проверяет, что новый email не занят другим
// пользователем, до записи патча: уникальный индекс сработал бы позже,
// но наружу ушла бы 500 вместо понятной 400.
func (s *profileService) checkEmailAvailable(db *gorm.DB, user *models.User, email *string) error {
	if email == nil || *email == user.Email {
		return nil
	}

	existing, err := s.userRepo.FindByEmail(db, *email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if existing.ID != user.ID {
		return apperrors.ErrEmailAlreadyExists
	}
	return nil
}

func (s *profileService) applyTagPatch(db *gorm.DB, user *models.User, req *dto.UpdateProfileRequest) error {
	if req.SkillsOffered != nil {
		skills, err := s.tagRepo.UpsertSkills(db, *req.SkillsOffered)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.ReplaceSkillsOffered(db, user, skills); err != nil {
			return apperrors.InternalError(err)
		}
	}
	if req.SkillsNeeded != nil {
		skills, err := s.tagRepo.UpsertSkills(db, *req.SkillsNeeded)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.ReplaceSkillsNeeded(db, user, skills); err != nil {
			return apperrors.InternalError(err)
		}
	}
	if req.Hobbies != nil {
		hobbies, err := s.tagRepo.UpsertHobbies(db, *req.Hobbies)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.ReplaceHobbies(db, user, hobbies); err != nil {
			return apperrors.InternalError(err)
		}
	}
	return nil
}

func (s *profileService) submitVerificationDocument(db *gorm.DB, user *models.User, document *multipart.FileHeader) error {
	if err := validateDocumentUpload(document); err != nil {
		return err
	}

	src, err := document.Open()
	if err != nil {
		return apperrors.InternalError(err)
	}
	defer src.Close()

	contentType := document.Header.Get("Content-Type")
	path := fmt.Sprintf("verification/%s/%s%s", user.ID, uuid.New().String(), filepath.Ext(document.Filename))
	if err := s.storage.Save(context.Background(), path, src, contentType); err != nil {
		return apperrors.InternalError(err)
	}

	request := &models.VerificationRequest{
		UserID:       user.ID,
		DocumentPath: path,
		Status:       models.VerificationStatusPending,
	}
	if err := s.verificationRepo.Create(db, request); err != nil {
		return apperrors.InternalError(err)
	}

	// Новый документ отправляет профессионала на повторную проверку
	if err := s.userRepo.SetVerified(db, user.ID, false); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("verification document submitted", "user_id", user.ID, "request_id", request.ID)
	return nil
}

// ScheduleDeletion помечает аккаунт на удаление и отзывает все
// refresh-токены: новые сессии до отмены удаления не выдаются.
// Повторная попытка при уже назначенном удалении - ошибка.
func (s *profileService) ScheduleDeletion(db *gorm.DB, userID string) (*dto.UserProfileDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if user.DeletionScheduledAt != nil {
		return nil, apperrors.ErrDeletionAlreadyScheduled
	}

	at := time.Now()
	if err := s.userRepo.ScheduleDeletion(db, userID, &at); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.tokenRepo.DeleteByUserID(db, userID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("account deletion scheduled", "user_id", userID, "at", at)
	return s.GetProfile(db, userID)
}

// CancelDeletion снимает пометку. Идемпотентен.
func (s *profileService) CancelDeletion(db *gorm.DB, userID string) (*dto.UserProfileDTO, error) {
	if err := s.userRepo.ScheduleDeletion(db, userID, nil); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return s.GetProfile(db, userID)
}
