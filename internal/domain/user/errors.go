package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailExists             = errors.New("email already registered")
	ErrEmployeeIDExists        = errors.New("employee id already registered")
	ErrOAuthProviderIDExists   = errors.New("oauth provider id already registered")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
