package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"mentormatch_backend/database"
	"mentormatch_backend/internal/app"
	"mentormatch_backend/internal/config"
	"mentormatch_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer держит роутер и соединение с тестовой БД.
// Запросы идут напрямую через router.ServeHTTP, поэтому транзакция
// теста прокидывается в DBMiddleware через контекст запроса.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer подключается к тестовой БД из DATABASE_URL,
// мигрирует схему и собирает приложение.
func NewTestServer(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := database.AutoMigrateDB(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	router := app.SetupRouter(cfg, db)

	log.Printf("Тестовый сервер готов, тестовая БД: %s", dsn)
	return &TestServer{
		Router: router,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// BeginTransaction открывает транзакцию теста.
// Все запросы с этой транзакцией изолированы и откатываются в конце.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("Не удалось открыть транзакцию: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil {
		t.Logf("Откат транзакции: %v", err)
	}
}

// SendRequest выполняет JSON-запрос к приложению в рамках транзакции tx.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}, tx *gorm.DB) (*http.Response, string) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req, token, tx)
}

// MultipartFile описывает файл для multipart-запроса
type MultipartFile struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

// SendMultipart выполняет multipart-запрос (загрузка файлов, патч профиля).
func (ts *TestServer) SendMultipart(t *testing.T, method, path, token string, fields map[string]string, files []MultipartFile, tx *gorm.DB) (*http.Response, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Ошибка записи поля %s: %v", key, err)
		}
	}

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+file.Field+`"; filename="`+file.Name+`"`)
		header.Set("Content-Type", file.ContentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("Ошибка создания части %s: %v", file.Field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			t.Fatalf("Ошибка записи файла %s: %v", file.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		t.Fatalf("Ошибка закрытия multipart: %v", err)
	}

	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return ts.do(t, req, token, tx)
}

func (ts *TestServer) do(t *testing.T, req *http.Request, token string, tx *gorm.DB) (*http.Response, string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)

	res := w.Result()
	bodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	res.Body.Close()
	res.Body = io.NopCloser(strings.NewReader(string(bodyBytes)))

	return res, string(bodyBytes)
}
