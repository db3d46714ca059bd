package middleware

import (
	"context"
	"net/http"
	"strings"

	"minigames_backend/pkg/resp"
	"minigames_backend/pkg/token"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	devKey
)

// Auth проверяет Bearer токен и кладёт ID игрока в контекст
func Auth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || len(raw) == 0 {
				resp.WriteError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := token.VerifyToken(raw, secretKey)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			userID, err := token.UserID(claims)
			if err != nil {
				resp.WriteError(w, http.StatusUnauthorized, err.Error())
				return
			}

			ctx := WithUser(r.Context(), userID, claims.Dev)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUser кладёт игрока в контекст
func WithUser(ctx context.Context, userID int, dev bool) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, devKey, dev)
}

// UserIDFromContext ID игрока из контекста
func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// IsDev разрешена ли игроку подмена вероятности
func IsDev(ctx context.Context) bool {
	dev, _ := ctx.Value(devKey).(bool)
	return dev
}
