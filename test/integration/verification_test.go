package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"mentormatch_backend/internal/models"
	"mentormatch_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

func TestVerification_DocumentCreatesPendingRequest(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	profToken, prof := helpers.CreateAndLoginProfessional(t, ts, tx)
	assert.True(t, prof.IsVerified)

	res, bodyStr := ts.SendMultipart(t, "PATCH", "/api/v1/profile/update", profToken,
		map[string]string{"data": `{"bio":"Senior Go engineer"}`},
		[]helpers.MultipartFile{{
			Field:       "document",
			Name:        "diploma.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.4 fake"),
		}}, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	// Новый документ сбрасывает верификацию до повторного решения
	var profile struct {
		IsVerified bool   `json:"is_verified"`
		Bio        string `json:"bio"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &profile))
	assert.False(t, profile.IsVerified)
	assert.Equal(t, "Senior Go engineer", profile.Bio)

	var requests []models.VerificationRequest
	assert.NoError(t, tx.Where("user_id = ?", prof.ID).Find(&requests).Error)
	assert.Len(t, requests, 1)
	assert.Equal(t, models.VerificationStatusPending, requests[0].Status)
}

// TestVerification_StudentDocumentIgnored - документ от студента
// заявку не создает
func TestVerification_StudentDocumentIgnored(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	studentToken, student := helpers.CreateAndLoginStudent(t, ts, tx)

	res, _ := ts.SendMultipart(t, "PATCH", "/api/v1/profile/update", studentToken,
		map[string]string{"data": `{"bio":"hi"}`},
		[]helpers.MultipartFile{{
			Field:       "document",
			Name:        "doc.pdf",
			ContentType: "application/pdf",
			Content:     []byte("%PDF-1.4 fake"),
		}}, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var count int64
	tx.Model(&models.VerificationRequest{}).Where("user_id = ?", student.ID).Count(&count)
	assert.Zero(t, count)
}

func TestVerification_ApproveFlow(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	profToken, prof := helpers.CreateAndLoginProfessional(t, ts, tx)
	staffToken, staff := helpers.CreateAndLoginStaff(t, ts, tx)

	res, _ := ts.SendMultipart(t, "PATCH", "/api/v1/profile/update", profToken,
		nil,
		[]helpers.MultipartFile{{
			Field:       "document",
			Name:        "diploma.jpg",
			ContentType: "image/jpeg",
			Content:     []byte{0xFF, 0xD8, 0xFF},
		}}, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Стаф видит заявку в списке
	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/verification", staffToken, nil, tx)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)

	var list struct {
		Requests []struct {
			ID     string `json:"id"`
			UserID string `json:"user_id"`
			Status string `json:"status"`
		} `json:"requests"`
	}
	assert.NoError(t, json.Unmarshal([]byte(listBody), &list))

	var requestID string
	for _, r := range list.Requests {
		if r.UserID == prof.ID {
			requestID = r.ID
			assert.Equal(t, "pending", r.Status)
		}
	}
	assert.NotEmpty(t, requestID, "Заявка профессионала должна быть в списке")

	// Approve верифицирует пользователя
	approveRes, approveBody := ts.SendRequest(t, "PATCH", "/api/v1/verification/"+requestID, staffToken, map[string]interface{}{
		"action": "approve",
	}, tx)
	assert.Equal(t, http.StatusOK, approveRes.StatusCode, "Ответ: "+approveBody)

	var reviewed struct {
		Status     string  `json:"status"`
		ReviewerID *string `json:"reviewer_id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(approveBody), &reviewed))
	assert.Equal(t, "approved", reviewed.Status)
	if assert.NotNil(t, reviewed.ReviewerID) {
		assert.Equal(t, staff.ID, *reviewed.ReviewerID)
	}

	var updated models.User
	assert.NoError(t, tx.First(&updated, "id = ?", prof.ID).Error)
	assert.True(t, updated.IsVerified)
}

func TestVerification_RejectLeavesUnverified(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	profToken, prof := helpers.CreateAndLoginProfessional(t, ts, tx)
	staffToken, _ := helpers.CreateAndLoginStaff(t, ts, tx)

	res, _ := ts.SendMultipart(t, "PATCH", "/api/v1/profile/update", profToken,
		nil,
		[]helpers.MultipartFile{{
			Field:       "document",
			Name:        "diploma.jpg",
			ContentType: "image/jpeg",
			Content:     []byte{0xFF, 0xD8, 0xFF},
		}}, tx)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var request models.VerificationRequest
	assert.NoError(t, tx.First(&request, "user_id = ?", prof.ID).Error)

	rejectRes, rejectBody := ts.SendRequest(t, "PATCH", "/api/v1/verification/"+request.ID, staffToken, map[string]interface{}{
		"action": "reject",
	}, tx)
	assert.Equal(t, http.StatusOK, rejectRes.StatusCode)
	assert.Contains(t, rejectBody, "rejected")

	var updated models.User
	assert.NoError(t, tx.First(&updated, "id = ?", prof.ID).Error)
	assert.False(t, updated.IsVerified)
}

func TestVerification_StaffOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)

	listRes, _ := ts.SendRequest(t, "GET", "/api/v1/verification", token, nil, tx)
	assert.Equal(t, http.StatusForbidden, listRes.StatusCode)

	reviewRes, _ := ts.SendRequest(t, "PATCH", "/api/v1/verification/some-id", token, map[string]interface{}{
		"action": "approve",
	}, tx)
	assert.Equal(t, http.StatusForbidden, reviewRes.StatusCode)
}

func TestVerification_InvalidAction(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	staffToken, _ := helpers.CreateAndLoginStaff(t, ts, tx)

	res, _ := ts.SendRequest(t, "PATCH", "/api/v1/verification/00000000-0000-0000-0000-000000000000", staffToken, map[string]interface{}{
		"action": "maybe",
	}, tx)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}
