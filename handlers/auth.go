package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellbase/wellbase/config"
	"github.com/wellbase/wellbase/middleware"
	"github.com/wellbase/wellbase/models"
	"github.com/wellbase/wellbase/pkg/apperrors"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func userOut(u *models.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func knownRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleGeologist, models.RoleEngineer, models.RoleViewer:
		return true
	}
	return false
}

func Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respondError(w, apperrors.Validation("email and password are required"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleViewer
	}
	if !knownRole(req.Role) {
		respondError(w, apperrors.Validation("unknown role %q", req.Role))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, apperrors.Internal("hashing password", err))
		return
	}
	u := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
	}
	if err := config.DB.Create(&u).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondError(w, apperrors.Consistency("email already registered"))
		} else {
			respondError(w, apperrors.Internal("creating user", err))
		}
		return
	}
	respondJSON(w, http.StatusCreated, userOut(&u))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, apperrors.Validation("invalid JSON body"))
		return
	}
	var u models.User
	err := config.DB.Where("email = ? AND is_active = ?",
		strings.ToLower(strings.TrimSpace(req.Email)), true).First(&u).Error
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	token, err := middleware.GenerateToken(u.ID.String(), u.Role, u.Name, u.Email)
	if err != nil {
		respondError(w, apperrors.Internal("signing token", err))
		return
	}
	respondJSON(w, http.StatusOK, loginResp{Token: token, User: userOut(&u)})
}

// GetCurrentUser returns the profile behind the presented token.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	var user models.User
	if err := config.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		respondError(w, apperrors.NotFound("user %s not found", claims.UserID))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":        userOut(&user),
		"permissions": middleware.GetUserPermissions(r),
	})
}
