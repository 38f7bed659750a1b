package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"mentormatch_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя в транзакции, хешируя пароль при необходимости
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Username, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API
func CreateAndLoginUser(t *testing.T, ts *TestServer, tx *gorm.DB, username, password string, role models.UserRole, verified bool) (string, *models.User) {
	user := &models.User{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: password,
		Role:         role,
		IsVerified:   verified,
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"username": username,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/token", "", loginBody, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err = json.Unmarshal([]byte(bodyStr), &loginResponse)
	assert.NoError(t, err, "Не удалось распарсить JSON")
	assert.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreateAndLoginStudent создает студента с уникальным username
func CreateAndLoginStudent(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	username := fmt.Sprintf("student_%d", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, username, "password123", models.UserRoleStudent, false)
}

// CreateAndLoginProfessional создает верифицированного профессионала
func CreateAndLoginProfessional(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	username := fmt.Sprintf("prof_%d", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, tx, username, "password123", models.UserRoleProfessional, true)
}

// CreateAndLoginStaff создает стаф-пользователя
func CreateAndLoginStaff(t *testing.T, ts *TestServer, tx *gorm.DB) (string, *models.User) {
	username := fmt.Sprintf("staff_%d", time.Now().UnixNano())
	user := &models.User{
		Username:     username,
		Email:        username + "@test.local",
		PasswordHash: "password123",
		Role:         models.UserRoleProfessional,
		IsStaff:      true,
		IsVerified:   true,
	}
	err := CreateUser(t, tx, user)
	assert.NoError(t, err)

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/token", "", map[string]interface{}{
		"username": username,
		"password": "password123",
	}, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Логин стаф-пользователя. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &loginResponse))

	return loginResponse.Token, user
}

// SetSkills назначает пользователю навыки напрямую через БД
func SetSkills(t *testing.T, tx *gorm.DB, user *models.User, offered, needed []string) {
	upsert := func(names []string) []models.Skill {
		skills := make([]models.Skill, 0, len(names))
		for _, name := range names {
			var skill models.Skill
			err := tx.Where("name = ?", name).FirstOrCreate(&skill, models.Skill{Name: name}).Error
			assert.NoError(t, err)
			skills = append(skills, skill)
		}
		return skills
	}

	if offered != nil {
		err := tx.Model(user).Association("SkillsOffered").Replace(upsert(offered))
		assert.NoError(t, err)
	}
	if needed != nil {
		err := tx.Model(user).Association("SkillsNeeded").Replace(upsert(needed))
		assert.NoError(t, err)
	}
}

// CreateMatch создает матч между двумя пользователями напрямую
func CreateMatch(t *testing.T, tx *gorm.DB, userA, userB string) models.Match {
	u1, u2 := models.CanonicalPair(userA, userB)
	match := models.Match{User1ID: u1, User2ID: u2}
	if err := tx.Create(&match).Error; err != nil {
		t.Fatalf("Не удалось создать матч: %v", err)
	}
	return match
}
