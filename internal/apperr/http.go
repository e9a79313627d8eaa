package apperr

import "net/http"

// HTTPStatus maps a kind onto its response status. Conflicts are reported as
// 400 like other input problems.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
