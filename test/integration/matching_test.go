package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"mentormatch_backend/internal/models"
	"mentormatch_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

type potentialResponse struct {
	Candidates []struct {
		User struct {
			ID         string `json:"id"`
			Username   string `json:"username"`
			IsVerified bool   `json:"is_verified"`
		} `json:"user"`
		Score int `json:"score"`
	} `json:"candidates"`
}

// TestPotential_StudentSeesOnlyVerifiedProfessionals
func TestPotential_StudentSeesOnlyVerifiedProfessionals(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	_, verified := helpers.CreateAndLoginProfessional(t, ts, tx)

	// Неверифицированный профессионал
	unverifiedToken, unverified := helpers.CreateAndLoginUser(t, ts, tx, "unverified_prof_p1", "password123", models.UserRoleProfessional, false)
	_ = unverifiedToken

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/potential", studentToken, nil, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var response potentialResponse
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &response))

	ids := make([]string, 0)
	for _, c := range response.Candidates {
		ids = append(ids, c.User.ID)
	}
	assert.Contains(t, ids, verified.ID)
	assert.NotContains(t, ids, unverified.ID)
}

// TestPotential_ScoringOrder - кандидат с пересечением навыков выше
func TestPotential_ScoringOrder(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)
	helpers.SetSkills(t, tx, student, []string{"python"}, []string{"go"})

	_, strong := helpers.CreateAndLoginProfessional(t, ts, tx)
	helpers.SetSkills(t, tx, strong, []string{"go"}, []string{"python"})

	_, weak := helpers.CreateAndLoginProfessional(t, ts, tx)
	helpers.SetSkills(t, tx, weak, []string{"cooking"}, []string{"baking"})

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/potential", studentToken, nil, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response potentialResponse
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &response))
	assert.GreaterOrEqual(t, len(response.Candidates), 2)

	scores := make(map[string]int)
	for _, c := range response.Candidates {
		scores[c.User.ID] = c.Score
	}
	assert.Greater(t, scores[strong.ID], scores[weak.ID], "Взаимодополняющие навыки должны давать больший score")

	// Список отсортирован по убыванию
	for i := 1; i < len(response.Candidates); i++ {
		assert.GreaterOrEqual(t, response.Candidates[i-1].Score, response.Candidates[i].Score)
	}
}

// TestPotential_LocalityAndGlobal - без global подбор ограничен страной
// пользователя (если у него заполнена геолокация)
func TestPotential_LocalityAndGlobal(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)
	assert.NoError(t, tx.Model(&models.User{}).Where("id = ?", student.ID).
		Updates(map[string]interface{}{"city": "Алматы", "country": "Казахстан"}).Error)

	_, local := helpers.CreateAndLoginProfessional(t, ts, tx)
	assert.NoError(t, tx.Model(&models.User{}).Where("id = ?", local.ID).
		Update("country", "Казахстан").Error)

	_, remote := helpers.CreateAndLoginProfessional(t, ts, tx)
	assert.NoError(t, tx.Model(&models.User{}).Where("id = ?", remote.ID).
		Update("country", "Германия").Error)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/potential", studentToken, nil, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var localOnly potentialResponse
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &localOnly))
	ids := make([]string, 0)
	for _, c := range localOnly.Candidates {
		ids = append(ids, c.User.ID)
	}
	assert.Contains(t, ids, local.ID)
	assert.NotContains(t, ids, remote.ID)

	// global=1 снимает ограничение по стране
	globalRes, globalBody := ts.SendRequest(t, "GET", "/api/v1/potential?global=1", studentToken, nil, tx)
	assert.Equal(t, http.StatusOK, globalRes.StatusCode)

	var all potentialResponse
	assert.NoError(t, json.Unmarshal([]byte(globalBody), &all))
	ids = ids[:0]
	for _, c := range all.Candidates {
		ids = append(ids, c.User.ID)
	}
	assert.Contains(t, ids, local.ID)
	assert.Contains(t, ids, remote.ID)
}

// TestPotential_SkillFilter - фильтр offered сужает выборку,
// регистр имени навыка не важен
func TestPotential_SkillFilter(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	_, guitarist := helpers.CreateAndLoginProfessional(t, ts, tx)
	helpers.SetSkills(t, tx, guitarist, []string{"Guitar"}, nil)

	_, pianist := helpers.CreateAndLoginProfessional(t, ts, tx)
	helpers.SetSkills(t, tx, pianist, []string{"Piano"}, nil)

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/potential?offered=guitar", studentToken, nil, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response potentialResponse
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &response))

	ids := make([]string, 0)
	for _, c := range response.Candidates {
		ids = append(ids, c.User.ID)
	}
	assert.Contains(t, ids, guitarist.ID)
	assert.NotContains(t, ids, pianist.ID)
}

func TestSwipe_MutualLikeCreatesMatch(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)
	profToken, prof := helpers.CreateAndLoginProfessional(t, ts, tx)

	// Первый лайк - матча еще нет
	res1, body1 := ts.SendRequest(t, "POST", "/api/v1/swipe", studentToken, map[string]interface{}{
		"to_user": prof.ID,
		"liked":   true,
	}, tx)
	assert.Equal(t, http.StatusOK, res1.StatusCode, "Ответ: "+body1)

	var swipe1 struct {
		Matched bool `json:"matched"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body1), &swipe1))
	assert.False(t, swipe1.Matched)

	// Встречный лайк замыкает матч
	res2, body2 := ts.SendRequest(t, "POST", "/api/v1/swipe", profToken, map[string]interface{}{
		"to_user": student.ID,
		"liked":   true,
	}, tx)
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	var swipe2 struct {
		Matched bool `json:"matched"`
		Match   *struct {
			ID      string `json:"id"`
			Partner struct {
				ID string `json:"id"`
			} `json:"partner"`
		} `json:"match"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body2), &swipe2))
	assert.True(t, swipe2.Matched)
	assert.NotNil(t, swipe2.Match)
	assert.Equal(t, student.ID, swipe2.Match.Partner.ID)

	// Ровно один матч в БД, пара каноническая
	var matches []models.Match
	assert.NoError(t, tx.Find(&matches).Error)
	assert.Len(t, matches, 1)
	assert.Less(t, matches[0].User1ID, matches[0].User2ID)

	// Матч виден обоим
	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/matches", studentToken, nil, tx)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, prof.Username)
}

func TestSwipe_DislikeDoesNotMatch(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)
	profToken, prof := helpers.CreateAndLoginProfessional(t, ts, tx)

	res1, _ := ts.SendRequest(t, "POST", "/api/v1/swipe", studentToken, map[string]interface{}{
		"to_user": prof.ID,
		"liked":   true,
	}, tx)
	assert.Equal(t, http.StatusOK, res1.StatusCode)

	res2, body2 := ts.SendRequest(t, "POST", "/api/v1/swipe", profToken, map[string]interface{}{
		"to_user": student.ID,
		"liked":   false,
	}, tx)
	assert.Equal(t, http.StatusOK, res2.StatusCode)

	var swipe2 struct {
		Matched bool `json:"matched"`
	}
	assert.NoError(t, json.Unmarshal([]byte(body2), &swipe2))
	assert.False(t, swipe2.Matched)

	var count int64
	tx.Model(&models.Match{}).Count(&count)
	assert.Zero(t, count)
}

// TestSwipe_RepeatOverwrites - повторный свайп перезаписывает решение,
// дубликат не создается
func TestSwipe_RepeatOverwrites(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)
	_, prof := helpers.CreateAndLoginProfessional(t, ts, tx)

	for _, liked := range []bool{true, false, true} {
		res, _ := ts.SendRequest(t, "POST", "/api/v1/swipe", studentToken, map[string]interface{}{
			"to_user": prof.ID,
			"liked":   liked,
		}, tx)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	var swipes []models.Swipe
	assert.NoError(t, tx.Where("from_user_id = ?", student.ID).Find(&swipes).Error)
	assert.Len(t, swipes, 1)
	assert.True(t, swipes[0].Liked)
}

func TestSwipe_SelfAndMissingTarget(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)

	selfRes, _ := ts.SendRequest(t, "POST", "/api/v1/swipe", token, map[string]interface{}{
		"to_user": user.ID,
		"liked":   true,
	}, tx)
	assert.Equal(t, http.StatusBadRequest, selfRes.StatusCode)

	missingRes, _ := ts.SendRequest(t, "POST", "/api/v1/swipe", token, map[string]interface{}{
		"to_user": "00000000-0000-0000-0000-000000000000",
		"liked":   true,
	}, tx)
	assert.Equal(t, http.StatusNotFound, missingRes.StatusCode)
}
