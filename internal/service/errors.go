package service

import "errors"

// Sentinel errors returned by services. Handlers map these onto the HTTP
// error taxonomy.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately undifferentiated to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateName signals a role/permission name collision within a
	// guard scope, or a taken user email.
	ErrDuplicateName = errors.New("name already exists")

	ErrUserNotFound       = errors.New("user not found")
	ErrRoleNotFound       = errors.New("role not found")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrPaymentNotFound    = errors.New("payment not found")

	// ErrNegativeAmount rejects payments with a negative amount. Refunds are
	// not modeled.
	ErrNegativeAmount = errors.New("payment amount must not be negative")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrRoleNotFound) ||
		errors.Is(err, ErrPermissionNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrPaymentNotFound)
}
