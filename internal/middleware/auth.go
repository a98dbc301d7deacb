package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/office-master/internal/config"
	"github.com/BruksfildServices01/office-master/internal/httperr"
)

const (
	ContextUserID     = "userID"
	ContextWorkshopID = "workshopID"
	ContextUserRole   = "userRole"
)

var errNoWorkshop = errors.New("token sem oficina")

// session é o que o token autoriza: usuário, oficina dona e papel.
type session struct {
	UserID     uint
	WorkshopID uint
	Role       string
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func parseSession(raw, secret string) (session, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return session{}, err
	}

	userID, ok1 := claims["sub"].(float64)
	workshopID, ok2 := claims["workshopId"].(float64)
	if !ok1 || !ok2 || workshopID <= 0 {
		return session{}, errNoWorkshop
	}
	role, _ := claims["role"].(string)

	return session{UserID: uint(userID), WorkshopID: uint(workshopID), Role: role}, nil
}

// AuthMiddleware exige um Bearer válido e publica o dono no contexto gin.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			httperr.Abort(c, http.StatusUnauthorized, "missing_authorization_header", "Token ausente.")
			return
		}

		raw, ok := bearerToken(header)
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Cabeçalho inválido.")
			return
		}

		s, err := parseSession(raw, cfg.JWTSecret)
		if errors.Is(err, errNoWorkshop) {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token_payload", "Token inválido.")
			return
		}
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Token inválido.")
			return
		}

		c.Set(ContextUserID, s.UserID)
		c.Set(ContextWorkshopID, s.WorkshopID)
		c.Set(ContextUserRole, s.Role)

		c.Next()
	}
}
