package services

import (
	"errors"
	"sort"

	"mentormatch_backend/internal/algorithms"
	"mentormatch_backend/internal/logger"
	"mentormatch_backend/internal/models"
	"mentormatch_backend/internal/repositories"
	"mentormatch_backend/internal/services/dto"
	"mentormatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MatchingService interface {
	GetPotential(db *gorm.DB, userID string, query *dto.PotentialQuery) (*dto.PotentialResponse, error)
	Swipe(db *gorm.DB, userID string, req *dto.SwipeRequest) (*dto.SwipeResponse, error)
	GetMatches(db *gorm.DB, userID string) (*dto.MatchListResponse, error)
}

type matchingService struct {
	userRepo  repositories.UserRepository
	swipeRepo repositories.SwipeRepository
}

func NewMatchingService(userRepo repositories.UserRepository, swipeRepo repositories.SwipeRepository) MatchingService {
	return &matchingService{
		userRepo:  userRepo,
		swipeRepo: swipeRepo,
	}
}

// GetPotential подбирает кандидатов противоположной роли и считает
// совместимость. Студентам показываем только верифицированных
// профессионалов. Без флага global кандидаты ограничены страной
// (и штатом, если указан) самого пользователя. Результат
// отсортирован по убыванию score.
func (s *matchingService) GetPotential(db *gorm.DB, userID string, query *dto.PotentialQuery) (*dto.PotentialResponse, error) {
	requester, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	isStudent := requester.Role == models.UserRoleStudent
	filter := repositories.CandidateFilter{
		Role:         models.OppositeRole(requester.Role),
		VerifiedOnly: isStudent,
		OfferedSkill: query.OfferedSkill,
		NeededSkill:  query.NeededSkill,
		ExcludeID:    userID,
	}
	// Локальный подбор работает только когда у пользователя
	// заполнена собственная геолокация
	if !query.Global && requester.City != "" && requester.Country != "" {
		filter.Country = requester.Country
		filter.State = requester.State
	}

	candidates, err := s.userRepo.FindCandidates(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	uOffered := algorithms.SkillSet(skillNamesOf(requester.SkillsOffered))
	uNeeded := algorithms.SkillSet(skillNamesOf(requester.SkillsNeeded))

	result := make([]dto.CandidateDTO, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		score := algorithms.CompatibilityScore(
			uOffered,
			uNeeded,
			algorithms.SkillSet(skillNamesOf(c.SkillsOffered)),
			algorithms.SkillSet(skillNamesOf(c.SkillsNeeded)),
			c.IsVerified,
			isStudent,
		)
		result = append(result, dto.CandidateDTO{
			User:  dto.NewUserProfileDTO(c, false),
			Score: score,
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	return &dto.PotentialResponse{Candidates: result}, nil
}

// Swipe записывает решение по кандидату. Повторный свайп той же пары
// перезаписывает liked. Взаимный лайк атомарно создает матч:
// upsert свайпа, проверка встречного лайка и get-or-create матча
// выполняются в одной транзакции.
func (s *matchingService) Swipe(db *gorm.DB, userID string, req *dto.SwipeRequest) (*dto.SwipeResponse, error) {
	if req.ToUserID == userID {
		return nil, apperrors.ErrSwipeSelf
	}

	target, err := s.userRepo.FindByID(db, req.ToUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrSwipeTargetNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	liked := req.Liked != nil && *req.Liked

	var match *models.Match
	err = db.Transaction(func(tx *gorm.DB) error {
		swipe := &models.Swipe{
			FromUserID: userID,
			ToUserID:   req.ToUserID,
			Liked:      liked,
		}
		if err := s.swipeRepo.Upsert(tx, swipe); err != nil {
			return err
		}

		if !liked {
			return nil
		}

		reciprocal, err := s.swipeRepo.HasLike(tx, req.ToUserID, userID)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		m, created, err := s.swipeRepo.GetOrCreateMatch(tx, userID, req.ToUserID)
		if err != nil {
			return err
		}
		if created {
			logger.Info("match formed", "match_id", m.ID, "user1_id", m.User1ID, "user2_id", m.User2ID)
		}
		match = m
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.SwipeResponse{Matched: match != nil}
	if match != nil {
		matchDTO, err := s.matchToDTO(db, match, userID, target)
		if err != nil {
			return nil, err
		}
		resp.Match = matchDTO
	}
	return resp, nil
}

func (s *matchingService) GetMatches(db *gorm.DB, userID string) (*dto.MatchListResponse, error) {
	matches, err := s.swipeRepo.FindMatchesForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := make([]dto.MatchDTO, 0, len(matches))
	for i := range matches {
		m := &matches[i]
		partner := m.User1
		if m.User1ID == userID {
			partner = m.User2
		}
		if partner == nil {
			continue
		}
		result = append(result, dto.MatchDTO{
			ID:        m.ID,
			Partner:   dto.NewUserProfileDTO(partner, false),
			CreatedAt: m.CreatedAt,
		})
	}

	return &dto.MatchListResponse{Matches: result}, nil
}

func (s *matchingService) matchToDTO(db *gorm.DB, match *models.Match, viewerID string, partner *models.User) (*dto.MatchDTO, error) {
	if partner == nil || !match.HasParticipant(partner.ID) || partner.ID == viewerID {
		partnerID := match.User1ID
		if partnerID == viewerID {
			partnerID = match.User2ID
		}
		loaded, err := s.userRepo.FindByID(db, partnerID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		partner = loaded
	}

	return &dto.MatchDTO{
		ID:        match.ID,
		Partner:   dto.NewUserProfileDTO(partner, false),
		CreatedAt: match.CreatedAt,
	}, nil
}

func skillNamesOf(skills []models.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}
