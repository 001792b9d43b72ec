// middleware/jwt.go
package middleware

import (
	"context"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/marketpadi/backend/models"
	"github.com/marketpadi/backend/pkg/levy"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// Claims is the JWT payload. Besides identity it carries the scoping
// identifiers the levy core consumes as pre-authorized filters.
type Claims struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	MarketID    string `json:"marketId,omitempty"`
	ChairmanID  string `json:"chairmanId,omitempty"`
	CaretakerID string `json:"caretakerId,omitempty"`
	TraderID    string `json:"traderId,omitempty"`
	GoodBoyID   string `json:"goodBoyId,omitempty"`
	jwt.RegisteredClaims
}

// unexported type prevents collisions in context
type ctxKey int

const userClaimsKey ctxKey = iota

// GenerateToken creates a signed JWT valid for 24 h.
func GenerateToken(u *models.User) (string, error) {
	claims := Claims{
		UserID: u.ID.String(),
		Name:   u.Name,
		Phone:  u.Phone,
		Role:   u.Role,

		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if u.MarketID != nil {
		claims.MarketID = u.MarketID.String()
	}
	if u.ChairmanID != nil {
		claims.ChairmanID = u.ChairmanID.String()
	}
	if u.CaretakerID != nil {
		claims.CaretakerID = u.CaretakerID.String()
	}
	if u.TraderID != nil {
		claims.TraderID = u.TraderID.String()
	}
	if u.GoodBoyID != nil {
		claims.GoodBoyID = u.GoodBoyID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// JWTMiddleware validates the token and stashes the Claims in ctx.
// ParseToken validates a signed token string and returns its claims. Used by
// the middleware and by handlers that sit outside it (e.g. the token echo
// endpoint).
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			http.Error(w, "missing Authorization header", http.StatusUnauthorized)
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid auth header", http.StatusUnauthorized)
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			http.Error(w, "invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole wraps a handler and ensures the JWT's role is one of roles.
// Admin passes everywhere.
func RequireRole(roles []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := GetRole(r)
		if role == models.RoleAdmin || slices.Contains(roles, role) {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "forbidden", http.StatusForbidden)
	})
}

// GetClaims pulls the *Claims out of the request context (or nil).
func GetClaims(r *http.Request) *Claims {
	if c, ok := r.Context().Value(userClaimsKey).(*Claims); ok {
		return c
	}
	return nil
}

func GetRole(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.Role
	}
	return ""
}

func GetUserID(r *http.Request) string {
	if c := GetClaims(r); c != nil {
		return c.UserID
	}
	return ""
}

// GetScope converts the claims into the levy core's Scope filter. IDs are
// parsed into uuid.UUID exactly once here, so the core never compares ID
// strings and mixed-case identifiers from different clients are harmless.
func GetScope(r *http.Request) levy.Scope {
	c := GetClaims(r)
	if c == nil {
		return levy.Scope{}
	}
	return levy.Scope{
		Role:        c.Role,
		MarketID:    parseID(c.MarketID),
		ChairmanID:  parseID(c.ChairmanID),
		CaretakerID: parseID(c.CaretakerID),
		TraderID:    parseID(c.TraderID),
		GoodBoyID:   parseID(c.GoodBoyID),
	}
}

func parseID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
