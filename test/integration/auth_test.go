package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"mentormatch_backend/internal/models"
	"mentormatch_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// TestAuthFlow - регистрация, логин, обновление и инвалидация токенов
func TestAuthFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	registerBody := map[string]interface{}{
		"username":  "auth_flow_student",
		"email":     "auth_flow@test.local",
		"password":  "super_password123",
		"password2": "super_password123",
		"role":      "student",
	}

	regRes, regBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", registerBody, tx)
	assert.Equal(t, http.StatusCreated, regRes.StatusCode, "Ответ: "+regBodyStr)

	var regResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal([]byte(regBodyStr), &regResponse))
	assert.NotEmpty(t, regResponse.AccessToken)
	assert.NotEmpty(t, regResponse.RefreshToken)
	assert.Equal(t, "auth_flow_student", regResponse.User.Username)
	assert.Equal(t, "student", regResponse.User.Role)

	// Логин по username
	logRes, logBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/token", "", map[string]interface{}{
		"username": "auth_flow_student",
		"password": "super_password123",
	}, tx)
	assert.Equal(t, http.StatusOK, logRes.StatusCode, "Ответ: "+logBodyStr)

	var logResponse struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	assert.NoError(t, json.Unmarshal([]byte(logBodyStr), &logResponse))

	// Ротация: старый refresh-токен одноразовый
	refRes, refBodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/token/refresh", "", map[string]interface{}{
		"refresh_token": logResponse.RefreshToken,
	}, tx)
	assert.Equal(t, http.StatusOK, refRes.StatusCode, "Ответ: "+refBodyStr)

	reuse, _ := ts.SendRequest(t, "POST", "/api/v1/auth/token/refresh", "", map[string]interface{}{
		"refresh_token": logResponse.RefreshToken,
	}, tx)
	assert.Equal(t, http.StatusUnauthorized, reuse.StatusCode, "Повторное использование refresh-токена должно быть отклонено")
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginStudent(t, ts, tx)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/token", "", map[string]interface{}{
		"username": user.Username,
		"password": "wrong_password",
	}, tx)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "Ответ: "+bodyStr)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	body := map[string]interface{}{
		"username":  "dup_user",
		"email":     "dup_user@test.local",
		"password":  "super_password123",
		"password2": "super_password123",
		"role":      "professional",
	}

	first, _ := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", body, tx)
	assert.Equal(t, http.StatusCreated, first.StatusCode)

	body["email"] = "dup_user_other@test.local"
	second, secondBody := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", body, tx)
	assert.Equal(t, http.StatusBadRequest, second.StatusCode, "Ответ: "+secondBody)
}

func TestRegister_WeakPassword(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"username":  "weak_pw_user",
		"email":     "weak_pw@test.local",
		"password":  "short",
		"password2": "short",
		"role":      "student",
	}, tx)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
}

// TestRegister_PasswordMismatch - password2 должен совпадать с password
func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"username":  "mismatch_user",
		"email":     "mismatch@test.local",
		"password":  "super_password123",
		"password2": "другая_строка_123",
		"role":      "student",
	}, tx)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
	assert.Contains(t, bodyStr, "password2")
}

func TestLogout_InvalidatesRefreshToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/auth/register", "", map[string]interface{}{
		"username":  "logout_user",
		"email":     "logout_user@test.local",
		"password":  "super_password123",
		"password2": "super_password123",
		"role":      "student",
	}, tx)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		RefreshToken string `json:"refresh_token"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &response))

	logoutRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/logout", "", map[string]interface{}{
		"refresh_token": response.RefreshToken,
	}, tx)
	assert.Equal(t, http.StatusOK, logoutRes.StatusCode)

	refreshRes, _ := ts.SendRequest(t, "POST", "/api/v1/auth/token/refresh", "", map[string]interface{}{
		"refresh_token": response.RefreshToken,
	}, tx)
	assert.Equal(t, http.StatusUnauthorized, refreshRes.StatusCode)
}

// TestLogin_CleansExpiredRefreshTokens - протухшие refresh-токены
// убираются при очередном логине
func TestLogin_CleansExpiredRefreshTokens(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	_, user := helpers.CreateAndLoginStudent(t, ts, tx)

	expired := &models.RefreshToken{
		UserID:    user.ID,
		Token:     "expired-token-" + user.ID,
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	assert.NoError(t, tx.Create(expired).Error)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/auth/token", "", map[string]interface{}{
		"username": user.Username,
		"password": "password123",
	}, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	assert.NoError(t, tx.Model(&models.RefreshToken{}).Where("token = ?", expired.Token).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProtectedRoute_RequiresToken(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	res, _ := ts.SendRequest(t, "GET", "/api/v1/profile", "", nil, tx)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
