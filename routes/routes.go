package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"

	"github.com/wellbase/wellbase/config"
	_ "github.com/wellbase/wellbase/docs"
	"github.com/wellbase/wellbase/handlers"
	"github.com/wellbase/wellbase/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/healthz", handleHealthz).Methods("GET")
	r.HandleFunc("/swagger.json", handleSwaggerDoc).Methods("GET")
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	// User profile endpoints: /profile decodes the token, /token loads the
	// stored user behind it.
	api.HandleFunc("/profile", handleProfile).Methods("GET")
	api.HandleFunc("/token", handlers.GetCurrentUser).Methods("GET")

	registerWellRoutes(api)
	registerSurveyRoutes(api)
	registerTrajectoryRoutes(api)
	registerTopRoutes(api)
	registerMediaRoutes(api)
	registerIngestRoutes(api)

	return r
}

// protect wraps a handler with a permission requirement.
func protect(permission string, h http.HandlerFunc) http.Handler {
	return middleware.RequirePermission(permission)(http.HandlerFunc(h))
}

// handleProfile returns the authenticated user's identity and grants.
func handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	response := map[string]interface{}{
		"userId":      claims.UserID,
		"name":        claims.Name,
		"email":       claims.Email,
		"role":        claims.Role,
		"permissions": middleware.GetUserPermissions(r),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHealthz reports liveness and, when a database is connected,
// whether it answers a ping.
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{"status": "ok"}
	code := http.StatusOK
	if config.DB != nil {
		sqlDB, err := config.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			response["status"] = "degraded"
			response["database"] = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			response["database"] = "ok"
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// handleSwaggerDoc serves the OpenAPI document registered by the docs
// package.
func handleSwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		http.Error(w, "swagger document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

// registerWellRoutes registers well and wellbore endpoints.
func registerWellRoutes(api *mux.Router) {
	api.Handle("/wells", protect("wells:read", handlers.ListWells)).Methods("GET")
	api.Handle("/wells", protect("wells:create", handlers.CreateWell)).Methods("POST")
	api.Handle("/wells/search", protect("wells:read", handlers.SearchWells)).Methods("POST")
	api.Handle("/wells/{id}", protect("wells:read", handlers.GetWell)).Methods("GET")

	api.Handle("/wellbores/{id}", protect("wellbores:read", handlers.GetWellbore)).Methods("GET")
	api.Handle("/wellbores/{id}", protect("wellbores:update", handlers.UpdateWellbore)).Methods("PUT")
}

// registerSurveyRoutes registers directional survey endpoints.
func registerSurveyRoutes(api *mux.Router) {
	api.Handle("/wellbores/{id}/surveys", protect("surveys:read", handlers.ListSurveys)).Methods("GET")
	api.Handle("/wellbores/{id}/surveys", protect("surveys:create", handlers.CreateSurvey)).Methods("POST")
	api.Handle("/surveys/{id}", protect("surveys:read", handlers.GetSurvey)).Methods("GET")
	api.Handle("/surveys/{id}/activate", protect("surveys:activate", handlers.ActivateSurvey)).Methods("PUT")
}

// registerTrajectoryRoutes registers trajectory computation, retrieval
// and export.
func registerTrajectoryRoutes(api *mux.Router) {
	api.Handle("/wellbores/{id}/trajectory/recompute", protect("trajectory:compute", handlers.RecomputeTrajectory)).Methods("POST")
	api.Handle("/wellbores/{id}/trajectory", protect("trajectory:read", handlers.GetTrajectory)).Methods("GET")
	api.Handle("/wellbores/{id}/trajectory.geojson", protect("trajectory:read", handlers.GetTrajectoryGeoJSON)).Methods("GET")
	api.Handle("/wellbores/{id}/export/trajectory.xlsx", protect("exports:read", handlers.ExportTrajectoryXLSX)).Methods("GET")
}

// registerTopRoutes registers formation top endpoints.
func registerTopRoutes(api *mux.Router) {
	api.Handle("/wellbores/{id}/tops", protect("tops:read", handlers.ListFormationTops)).Methods("GET")
	api.Handle("/wellbores/{id}/tops", protect("tops:create", handlers.CreateFormationTop)).Methods("POST")
}

// registerMediaRoutes registers the media catalog endpoints.
func registerMediaRoutes(api *mux.Router) {
	api.Handle("/wellbores/{id}/media", protect("media:read", handlers.ListMedia)).Methods("GET")
}

// registerIngestRoutes registers bulk data-file uploads.
func registerIngestRoutes(api *mux.Router) {
	api.Handle("/ingest/{dataset}", protect("ingest:write", handlers.UploadDataset)).Methods("POST")
}
