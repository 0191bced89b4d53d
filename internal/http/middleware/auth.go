package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Tripcarte/easytix-booking/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

type actorClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Actor attaches the caller identity from an HS256 bearer token. Requests
// without a token pass through anonymously; a presented token must verify.
// With no secret configured the middleware is a no-op.
func Actor(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		var claims actorClaims
		_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err == nil && claims.Subject == "" {
			err = errors.New("token has no subject")
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"data":    gin.H{},
				"message": "Invalid or expired token",
			})
			return
		}

		actor := domain.Actor{Subject: claims.Subject, Role: claims.Role}
		c.Set(actorKey, actor.Subject)
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
