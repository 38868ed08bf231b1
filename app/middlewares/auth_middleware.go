package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-catalog/app/helpers"
	"github.com/Rakhulsr/go-catalog/app/models"
	"github.com/Rakhulsr/go-catalog/app/services"
	"github.com/unrolled/render"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *models.PersonalAccessToken, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>" and stores the
// user and its token in the request context.
func AuthMiddleware(auth Authenticator, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthenticated(w, rnd)
				return
			}

			user, accessToken, err := auth.Authenticate(r.Context(), strings.TrimSpace(token))
			if errors.Is(err, services.ErrUnauthenticated) {
				unauthenticated(w, rnd)
				return
			}
			if err != nil {
				log.Printf("AuthMiddleware: failed to authenticate request to %s: %v", r.URL.Path, err)
				_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server Error"})
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUser, user)
			ctx = context.WithValue(ctx, helpers.ContextKeyToken, accessToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthenticated(w http.ResponseWriter, rnd *render.Render) {
	_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(helpers.ContextKeyUser).(*models.User)
	return user, ok && user != nil
}
