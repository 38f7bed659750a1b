package dto

import "time"

// PotentialQuery - фильтры подбора кандидатов.
// Без global кандидаты ограничены страной (и штатом) пользователя.
type PotentialQuery struct {
	Global       bool   `form:"global"`
	OfferedSkill string `form:"offered"`
	NeededSkill  string `form:"needed"`
}

// CandidateDTO - кандидат с рассчитанной совместимостью
type CandidateDTO struct {
	User  UserProfileDTO `json:"user"`
	Score int            `json:"score"` // 0-100
}

// PotentialResponse - список кандидатов по убыванию score
type PotentialResponse struct {
	Candidates []CandidateDTO `json:"candidates"`
}

// SwipeRequest - решение по кандидату
type SwipeRequest struct {
	ToUserID string `json:"to_user" binding:"required"`
	Liked    *bool  `json:"liked" binding:"required"`
}

// SwipeResponse - результат свайпа.
// matched=true при любом лайке с существующим встречным лайком,
// в том числе повторном - матч в ответе присутствует каждый раз.
type SwipeResponse struct {
	Matched bool      `json:"matched"`
	Match   *MatchDTO `json:"match,omitempty"`
}

// MatchDTO - матч с профилем второго участника
type MatchDTO struct {
	ID        string         `json:"id"`
	Partner   UserProfileDTO `json:"partner"`
	CreatedAt time.Time      `json:"created_at"`
}

// MatchListResponse - все матчи пользователя
type MatchListResponse struct {
	Matches []MatchDTO `json:"matches"`
}
