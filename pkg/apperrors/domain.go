package apperrors

import (
	"net/http"
)

// =========================================================================
// Фабрики
// =========================================================================

// ErrNotFound - "не найдено" (404) с сообщением для клиента.
func ErrNotFound(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

// ErrConflict - конфликт уникальности или состояния (409).
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - операция невозможна в текущем состоянии (400).
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrDatabase - ошибка хранилища (500).
func ErrDatabase(err error, domain string) *AppError {
	return Wrap(err, CodeDatabaseError, domain, "Database error", http.StatusInternalServerError)
}

// ErrStorage - ошибка файлового хранилища (500).
func ErrStorage(err error) *AppError {
	return Wrap(err, CodeExternalServiceError, "storage", "File storage error", http.StatusInternalServerError)
}

// =========================================================================
// Access guard
// =========================================================================

var ErrNoToken = NewUnauthorizedError("Access denied. No token provided.")

var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

var ErrPrincipalNotFound = NewUnauthorizedError("User not found")

var ErrAccountDeactivated = New(
	CodeAccountDisabled,
	"auth",
	"User account is deactivated",
	http.StatusUnauthorized,
)

var ErrAdminRequired = NewForbiddenError("Access denied. Admin role required.")

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWrongCurrentPassword = New(
	CodeInvalidCredentials,
	"auth",
	"Current password is incorrect",
	http.StatusBadRequest,
)

// --- Uploads ---

var ErrFileRequired = New(
	CodeBadRequest,
	"upload",
	"File is required",
	http.StatusBadRequest,
)

var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File size exceeds the allowed limit",
	http.StatusBadRequest,
)

var ErrInvalidFileType = New(
	CodeValidationFailed,
	"upload",
	"The provided file type is not allowed",
	http.StatusBadRequest,
)
