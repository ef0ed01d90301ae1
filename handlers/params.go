package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wellbase/wellbase/pkg/apperrors"
)

// parsePagination reads page/limit query parameters with the defaults the
// rest of the API uses.
func parsePagination(r *http.Request) (page, limit, offset int) {
	page, limit = 1, 50
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 500 {
		limit = l
	}
	return page, limit, (page - 1) * limit
}

// pathUUID parses the named mux variable as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("%s is not a valid UUID: %q", name, raw)
	}
	return id, nil
}

// listResponse is the envelope for paginated collections.
type listResponse struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
	Data  interface{} `json:"data"`
}
