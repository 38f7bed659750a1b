package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для доменных ошибок
(auth, swipe/match, сообщения, медиа, верификация).
*/

// =========================================================================
// Фабричные функции
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404).
// Используется, когда ошибка репозитория (gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Auth
// =========================================================================

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"auth",
	"Username is already taken",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email is already registered",
	http.StatusBadRequest,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"auth",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

// ErrInvalidUserRole - операция не предусмотрена для роли пользователя
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrStaffOnly - не-сотрудник пытается выполнить модераторское действие
var ErrStaffOnly = New(
	CodeForbidden,
	"auth",
	"Staff privileges required",
	http.StatusForbidden,
)

// =========================================================================
// Swipe & Match
// =========================================================================

// ErrSwipeTargetNotFound - to_user не существует
var ErrSwipeTargetNotFound = New(
	CodeNotFound,
	"swipe",
	"Target user not found",
	http.StatusNotFound,
)

// ErrSwipeSelf - свайп на самого себя
var ErrSwipeSelf = New(
	CodeInvalidOperation,
	"swipe",
	"Cannot swipe on yourself",
	http.StatusBadRequest,
)

// ErrNotMatchParticipant - пользователь не является участником матча
var ErrNotMatchParticipant = New(
	CodeForbidden,
	"message",
	"You are not a participant of this match",
	http.StatusForbidden,
)

// =========================================================================
// Media & Uploads
// =========================================================================

// ErrFileTooLarge - файл превышает максимальный размер
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File too large (max 10MB)",
	http.StatusBadRequest,
)

// ErrInvalidFileType - MIME-тип файла не разрешен
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"Only images and videos are allowed",
	http.StatusBadRequest,
)

// ErrForeignGallery - загрузка в чужую галерею запрещена
var ErrForeignGallery = New(
	CodeForbidden,
	"media",
	"Cannot upload media to another user's gallery",
	http.StatusForbidden,
)

// =========================================================================
// Verification & Account
// =========================================================================

// ErrInvalidVerificationAction - action не approve/reject
var ErrInvalidVerificationAction = New(
	CodeValidationFailed,
	"verification",
	"Invalid action (expected 'approve' or 'reject')",
	http.StatusBadRequest,
)

// ErrDeletionAlreadyScheduled - удаление аккаунта уже запланировано
var ErrDeletionAlreadyScheduled = New(
	CodeInvalidOperation,
	"account",
	"Deletion already scheduled",
	http.StatusBadRequest,
)
