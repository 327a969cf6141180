package http

import (
	"errors"
	"net/http"

	"github.com/mkhasanov/go-user-guard/internal/service"
	"github.com/mkhasanov/go-user-guard/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrNoUserIDsProvided:   http.StatusBadRequest,
	service.ErrInvalidStatus:       http.StatusBadRequest,
	service.ErrWrongPassword:       http.StatusUnauthorized,
	service.ErrUserBlocked:         http.StatusForbidden,
	service.ErrTokenIsExpired:      http.StatusForbidden,
	service.ErrTokenIsInvalid:      http.StatusForbidden,
	service.ErrTokenRevoked:        http.StatusForbidden,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrStoreUnavailable:   http.StatusInternalServerError,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
