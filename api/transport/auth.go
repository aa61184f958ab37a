package transport

import (
	"errors"
	"fmt"
	"github.com/alex-pricope/hackathon-scoring/logging"
	"github.com/alex-pricope/hackathon-scoring/scoring"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"net/http"
	"strings"
	"time"
)

const requesterKey = "requester"

var errInvalidToken = errors.New("invalid or expired token")

// Claims is the access token payload. The subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator resolves the caller of a request into a scoring.Requester.
type Authenticator struct {
	secret     []byte
	adminToken string
}

func NewAuthenticator(jwtSecret, adminToken string) *Authenticator {
	return &Authenticator{
		secret:     []byte(jwtSecret),
		adminToken: adminToken,
	}
}

// IssueToken signs an HS256 access token for a user.
func (a *Authenticator) IssueToken(userID string, role scoring.Role, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Resolve returns nil and no error for an anonymous request.
func (a *Authenticator) Resolve(g *gin.Context) (*scoring.Requester, error) {
	if token := g.GetHeader("x-admin-token"); token != "" {
		if a.adminToken == "" || token != a.adminToken {
			return nil, errors.New("invalid admin token")
		}
		return &scoring.Requester{UserID: "admin", Role: scoring.RoleAdmin}, nil
	}

	tokenString := bearerToken(g)
	if tokenString == "" {
		return nil, nil
	}
	if len(a.secret) == 0 {
		return nil, errInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return nil, errInvalidToken
	}

	role := scoring.Role(claims.Role)
	switch role {
	case scoring.RoleAdmin, scoring.RoleOrganizer, scoring.RoleJudge, scoring.RoleParticipant:
	default:
		return nil, fmt.Errorf("unknown role %q in token", claims.Role)
	}
	return &scoring.Requester{UserID: claims.Subject, Role: role}, nil
}

// Identify stores the caller, if any, on the context. Bad credentials are
// rejected; missing credentials are not.
func (a *Authenticator) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, err := a.Resolve(c)
		if err != nil {
			logging.Log.Warnf("AUTH: rejected credentials on %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if requester != nil {
			c.Set(requesterKey, requester)
		}
		c.Next()
	}
}

// RequireRequester runs after Identify and rejects anonymous calls.
func RequireRequester() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RequesterFrom(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !RequesterFrom(c).IsAdmin() {
			logging.Log.Warnf("ADMIN: Unauthorized access attempt to %s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func RequesterFrom(c *gin.Context) *scoring.Requester {
	v, ok := c.Get(requesterKey)
	if !ok {
		return nil
	}
	requester, _ := v.(*scoring.Requester)
	return requester
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
