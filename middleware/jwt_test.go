package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wellbase/wellbase/models"
)

func TestJWTMiddlewareRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("user-1", models.RoleGeologist, "Pat", "pat@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	var got *Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wells", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	JWTMiddleware(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil {
		t.Fatal("claims not attached to context")
	}
	if got.UserID != "user-1" || got.Role != models.RoleGeologist || got.Email != "pat@example.com" {
		t.Errorf("claims = %+v", got)
	}
}

func TestJWTMiddlewareRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/wells", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			JWTMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Error("handler reached with invalid token")
			})).ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	tests := []struct {
		role       string
		permission string
		wantStatus int
	}{
		{models.RoleAdmin, "users:delete", http.StatusOK},
		{models.RoleGeologist, "tops:create", http.StatusOK},
		{models.RoleGeologist, "surveys:activate", http.StatusOK},
		{models.RoleGeologist, "users:read", http.StatusForbidden},
		{models.RoleEngineer, "wells:read", http.StatusOK},
		{models.RoleEngineer, "trajectory:compute", http.StatusOK},
		{models.RoleEngineer, "tops:create", http.StatusForbidden},
		{models.RoleViewer, "trajectory:read", http.StatusOK},
		{models.RoleViewer, "surveys:create", http.StatusForbidden},
		{models.RoleViewer, "ingest:write", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role+" "+tt.permission, func(t *testing.T) {
			token, err := GenerateToken("u", tt.role, "n", "e@x")
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()

			handler := JWTMiddleware(RequirePermission(tt.permission)(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s needing %s: status = %d, want %d",
					tt.role, tt.permission, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequirePermissionWithoutClaims(t *testing.T) {
	rec := httptest.NewRecorder()
	RequirePermission("wells:read")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler reached without claims")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
