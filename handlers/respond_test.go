package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/wellbase/wellbase/pkg/apperrors"
)

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		kind apperrors.Kind
		want int
	}{
		{apperrors.KindNotFound, http.StatusNotFound},
		{apperrors.KindValidation, http.StatusBadRequest},
		{apperrors.KindConfiguration, http.StatusConflict},
		{apperrors.KindProjection, http.StatusConflict},
		{apperrors.KindConsistency, http.StatusConflict},
		{apperrors.KindInternal, http.StatusInternalServerError},
		{apperrors.Kind("SOMETHING_NEW"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusForKind(tt.kind); got != tt.want {
			t.Errorf("statusForKind(%s) = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestRespondErrorStructured(t *testing.T) {
	rec := httptest.NewRecorder()
	err := apperrors.Validation("inclination out of range").
		WithDetails(map[string]interface{}{"seq": 3})
	respondError(rec, err)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Kind != string(apperrors.KindValidation) {
		t.Errorf("kind = %q, want VALIDATION", body.Kind)
	}
	if body.Error != "inclination out of range" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Details["seq"] != float64(3) {
		t.Errorf("details = %v, want seq 3", body.Details)
	}
}

func TestRespondErrorPlain(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body.Kind != string(apperrors.KindInternal) {
		t.Errorf("kind = %q, want INTERNAL", body.Kind)
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := apperrors.Wrap(apperrors.KindConsistency, "another writer holds the wellbore", errors.New("lock busy"))
	respondError(rec, wrapped)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name                    string
		query                   string
		page, limit, wantOffset int
	}{
		{"defaults", "", 1, 50, 0},
		{"explicit", "page=3&limit=20", 3, 20, 40},
		{"zero page clamps", "page=0", 1, 50, 0},
		{"negative page clamps", "page=-2", 1, 50, 0},
		{"limit above cap ignored", "limit=9999", 1, 50, 0},
		{"garbage ignored", "page=abc&limit=xyz", 1, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/wells?"+tt.query, nil)
			page, limit, offset := parsePagination(r)
			if page != tt.page || limit != tt.limit || offset != tt.wantOffset {
				t.Errorf("parsePagination() = (%d, %d, %d), want (%d, %d, %d)",
					page, limit, offset, tt.page, tt.limit, tt.wantOffset)
			}
		})
	}
}

func TestPathUUID(t *testing.T) {
	valid := "0b6f4a4e-9a40-4d9f-9a3f-0a1f9b4a2c3d"

	router := mux.NewRouter()
	var gotErr error
	router.HandleFunc("/wells/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, gotErr = pathUUID(r, "id")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wells/"+valid, nil))
	if gotErr != nil {
		t.Errorf("valid UUID rejected: %v", gotErr)
	}

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wells/not-a-uuid", nil))
	if !apperrors.IsKind(gotErr, apperrors.KindValidation) {
		t.Errorf("invalid UUID: err = %v, want VALIDATION", gotErr)
	}
}
