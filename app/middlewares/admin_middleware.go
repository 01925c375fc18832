package middlewares

import (
	"log"
	"net/http"

	"github.com/mobstermerch/storefront/app/helpers"
	"github.com/mobstermerch/storefront/app/models"
	"github.com/mobstermerch/storefront/app/repositories"
	"github.com/mobstermerch/storefront/app/services"
)

// AdminAuthMiddleware re-checks the role against the database rather
// than trusting whatever the context carries. Cookie sessions store no
// role at all, and a stale token must not outlive a demotion.
func AdminAuthMiddleware(userRepo repositories.UserRepositoryImpl) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := r.Context().Value(helpers.ContextKeyUserID).(string)
			if !ok || userID == "" {
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil || user == nil {
				log.Printf("ERROR: AdminAuthMiddleware: failed to load user %s: %v", userID, err)
				http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			if user.Role != models.RoleAdmin {
				log.Printf("WARNING: AdminAuthMiddleware: user %s (%s) denied admin access", user.ID, user.Email)
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MaintenanceMiddleware returns 503 for storefront traffic while the
// maintenance flag is on. Admin routes bypass it so the flag can be
// turned back off.
func MaintenanceMiddleware(settings *services.SettingsService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if settings.MaintenanceEnabled(r.Context()) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error":"the store is down for maintenance, please try again later"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
