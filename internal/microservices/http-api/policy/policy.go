// Package policy decides who may do what. Every function takes the caller,
// nil for anonymous requests, and returns nil when the action is allowed.
package policy

import (
	"net/http"

	"yamdb/internal/apperr"
	"yamdb/internal/microservices/http-api/models"
)

var (
	ErrAuthenticationRequired = apperr.Authentication("authentication credentials were not provided")
	ErrPermissionDenied       = apperr.Authorization("you do not have permission to perform this action")
)

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAdmin is the admin predicate: superuser, admin role, or staff flag.
func IsAdmin(u *models.User) bool {
	return u != nil && (u.IsSuperuser || u.IsAdmin())
}

// AdminOnly guards user administration.
func AdminOnly(caller *models.User) error {
	if caller == nil {
		return ErrAuthenticationRequired
	}
	if !IsAdmin(caller) {
		return ErrPermissionDenied
	}
	return nil
}

// AdminOrReadOnly guards categories, genres and titles.
func AdminOrReadOnly(caller *models.User, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	return AdminOnly(caller)
}

// AuthenticatedOrReadOnly is the collection-level check for reviews and
// comments.
func AuthenticatedOrReadOnly(caller *models.User, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	if caller == nil {
		return ErrAuthenticationRequired
	}
	return nil
}

// CanModifyAuthored is the object-level check for updating or deleting a
// review or comment written by authorID.
func CanModifyAuthored(caller *models.User, authorID string) error {
	if caller == nil {
		return ErrAuthenticationRequired
	}
	if caller.ID == authorID || IsAdmin(caller) || caller.IsModerator() {
		return nil
	}
	return ErrPermissionDenied
}
