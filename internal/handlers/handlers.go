// Package handlers is the thin HTTP boundary: request parsing, validation,
// and mapping domain results onto the response envelope. Business rules live
// in internal/lifecycle.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/jobboard/auth"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/models"
)

// maxUploadBytes caps multipart parsing for registration uploads.
const maxUploadBytes = 32 << 20

// actorFrom converts request claims into a lifecycle actor.
func actorFrom(r *http.Request) (lifecycle.Actor, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return lifecycle.Actor{}, false
	}
	return lifecycle.Actor{ID: claims.UserID, Role: models.Role(claims.Role)}, true
}

// pathID parses the {id} path segment.
func pathID(r *http.Request, name string) (uint, bool) {
	n, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// isDuplicate detects unique-constraint violations across drivers.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// pagination reads limit/page query params with the shared defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			offset = (n - 1) * limit
		}
	}
	return limit, offset
}
