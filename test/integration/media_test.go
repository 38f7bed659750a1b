package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"mentormatch_backend/test/helpers"

	"github.com/stretchr/testify/assert"
)

// Минимальный валидный JPEG-заголовок для тестов
var fakeJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

func TestMedia_UploadAndOwnGallery(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)

	res, bodyStr := ts.SendMultipart(t, "POST", "/api/v1/media/"+user.ID, token,
		map[string]string{"caption": "Моя первая фотография"},
		[]helpers.MultipartFile{{
			Field:       "file",
			Name:        "photo.jpg",
			ContentType: "image/jpeg",
			Content:     fakeJPEG,
		}}, tx)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var media struct {
		ID        string `json:"id"`
		MediaType string `json:"media_type"`
		MimeType  string `json:"mime_type"`
		Caption   string `json:"caption"`
	}
	assert.NoError(t, json.Unmarshal([]byte(bodyStr), &media))
	assert.Equal(t, "image", media.MediaType)
	assert.Equal(t, "image/jpeg", media.MimeType)
	assert.Equal(t, "Моя первая фотография", media.Caption)

	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/media/"+user.ID, token, nil, tx)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, media.ID)
}

// TestMedia_VisibleToMatchedOnly - галерея доступна владельцу и матчам.
// Посторонний получает пустой список, а не ошибку.
func TestMedia_VisibleToMatchedOnly(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginStudent(t, ts, tx)
	matchedToken, matched := helpers.CreateAndLoginProfessional(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginProfessional(t, ts, tx)

	helpers.CreateMatch(t, tx, owner.ID, matched.ID)

	res, uploadBody := ts.SendMultipart(t, "POST", "/api/v1/media/"+owner.ID, ownerToken,
		nil,
		[]helpers.MultipartFile{{
			Field:       "file",
			Name:        "photo.jpg",
			ContentType: "image/jpeg",
			Content:     fakeJPEG,
		}}, tx)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var uploaded struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(uploadBody), &uploaded))

	matchedRes, matchedBody := ts.SendRequest(t, "GET", "/api/v1/media/"+owner.ID, matchedToken, nil, tx)
	assert.Equal(t, http.StatusOK, matchedRes.StatusCode)
	assert.Contains(t, matchedBody, uploaded.ID)

	strangerRes, strangerBody := ts.SendRequest(t, "GET", "/api/v1/media/"+owner.ID, strangerToken, nil, tx)
	assert.Equal(t, http.StatusOK, strangerRes.StatusCode)
	assert.NotContains(t, strangerBody, uploaded.ID)
}

func TestMedia_ForeignGalleryUpload(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, _ := helpers.CreateAndLoginStudent(t, ts, tx)
	_, other := helpers.CreateAndLoginProfessional(t, ts, tx)

	res, _ := ts.SendMultipart(t, "POST", "/api/v1/media/"+other.ID, token,
		nil,
		[]helpers.MultipartFile{{
			Field:       "file",
			Name:        "photo.jpg",
			ContentType: "image/jpeg",
			Content:     fakeJPEG,
		}}, tx)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestMedia_DeleteOwn - владелец удаляет файл из своей галереи;
// чужие файлы удалять нельзя
func TestMedia_DeleteOwn(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	ownerToken, owner := helpers.CreateAndLoginStudent(t, ts, tx)
	strangerToken, _ := helpers.CreateAndLoginProfessional(t, ts, tx)

	res, uploadBody := ts.SendMultipart(t, "POST", "/api/v1/media/"+owner.ID, ownerToken,
		nil,
		[]helpers.MultipartFile{{
			Field:       "file",
			Name:        "photo.jpg",
			ContentType: "image/jpeg",
			Content:     fakeJPEG,
		}}, tx)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var uploaded struct {
		ID string `json:"id"`
	}
	assert.NoError(t, json.Unmarshal([]byte(uploadBody), &uploaded))

	// Посторонний удалить не может
	strangerRes, _ := ts.SendRequest(t, "DELETE", "/api/v1/media/"+owner.ID+"/"+uploaded.ID, strangerToken, nil, tx)
	assert.Equal(t, http.StatusForbidden, strangerRes.StatusCode)

	delRes, _ := ts.SendRequest(t, "DELETE", "/api/v1/media/"+owner.ID+"/"+uploaded.ID, ownerToken, nil, tx)
	assert.Equal(t, http.StatusNoContent, delRes.StatusCode)

	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/media/"+owner.ID, ownerToken, nil, tx)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.NotContains(t, listBody, uploaded.ID)

	// Повторное удаление - 404
	again, _ := ts.SendRequest(t, "DELETE", "/api/v1/media/"+owner.ID+"/"+uploaded.ID, ownerToken, nil, tx)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}

func TestMedia_RejectsBadUploads(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	tx := ts.BeginTransaction(t)
	defer ts.RollbackTransaction(t, tx)

	token, user := helpers.CreateAndLoginStudent(t, ts, tx)

	// Недопустимый тип
	badType, _ := ts.SendMultipart(t, "POST", "/api/v1/media/"+user.ID, token,
		nil,
		[]helpers.MultipartFile{{
			Field:       "file",
			Name:        "malware.exe",
			ContentType: "application/octet-stream",
			Content:     []byte("MZ"),
		}}, tx)
	assert.Equal(t, http.StatusBadRequest, badType.StatusCode)

	// Превышение лимита размера (10MB)
	oversized, _ := ts.SendMultipart(t, "POST", "/api/v1/media/"+user.ID, token,
		nil,
		[]helpers.MultipartFile{{
			Field:       "file",
			Name:        "huge.jpg",
			ContentType: "image/jpeg",
			Content:     bytes.Repeat([]byte{0xFF}, 11*1024*1024),
		}}, tx)
	assert.Equal(t, http.StatusBadRequest, oversized.StatusCode)

	// Без файла
	noFile, _ := ts.SendMultipart(t, "POST", "/api/v1/media/"+user.ID, token,
		map[string]string{"caption": "без файла"}, nil, tx)
	assert.Equal(t, http.StatusBadRequest, noFile.StatusCode)
}
