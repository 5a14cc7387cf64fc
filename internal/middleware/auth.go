package middleware

import (
	"errors"
	"strings"

	"triveni_backend/internal/auth"
	"triveni_backend/internal/logger"
	"triveni_backend/internal/models"
	"triveni_backend/internal/repositories"
	"triveni_backend/pkg/apperrors"
	"triveni_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const bearerPrefix = "Bearer "

// AccessGuard проверяет bearer-токен и загружает пользователя.
// БД берется из gin.Context, поэтому DBMiddleware должен стоять раньше.
type AccessGuard struct {
	tokens   *auth.TokenManager
	userRepo repositories.UserRepository
}

func NewAccessGuard(tokens *auth.TokenManager, userRepo repositories.UserRepository) *AccessGuard {
	return &AccessGuard{tokens: tokens, userRepo: userRepo}
}

// RequireAuth - без валидного токена активного пользователя запрос отклоняется с 401.
func (g *AccessGuard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrNoToken)
			return
		}
		user, err := g.authenticate(c, token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "Authentication failed", "path", c.Request.URL.Path, "error", err.Error())
			apperrors.HandleError(c, err)
			return
		}
		attach(c, user)
		c.Next()
	}
}

// OptionalAuth прикрепляет пользователя, если токен валиден, и никогда не отклоняет запрос.
func (g *AccessGuard) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if user, err := g.authenticate(c, token); err == nil {
				attach(c, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin ставится после RequireAuth.
func (g *AccessGuard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			logger.CtxWarn(c.Request.Context(), "Admin access denied", "path", c.Request.URL.Path, "user_id", GetUserID(c))
			apperrors.HandleError(c, apperrors.ErrAdminRequired)
			return
		}
		c.Next()
	}
}

func (g *AccessGuard) authenticate(c *gin.Context, token string) (*models.User, error) {
	claims, err := g.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	user, err := g.userRepo.FindByID(dbFrom(c), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrPrincipalNotFound
		}
		return nil, apperrors.ErrDatabase(err, "auth")
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDeactivated
	}
	return user, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

// attach - роль берется из БД, а не из токена: смена роли действует сразу.
func attach(c *gin.Context, user *models.User) {
	c.Set(contextkeys.UserIDKey, user.ID)
	c.Set(contextkeys.RoleKey, user.Role)
	c.Set(contextkeys.UserKey, user)
	c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), user.ID))
}

func dbFrom(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	panic("middleware: DBMiddleware did not set the db key")
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	return c.GetString(contextkeys.UserIDKey)
}

// GetUser - пользователь, прикрепленный AccessGuard, или nil.
func GetUser(c *gin.Context) *models.User {
	v, ok := c.Get(contextkeys.UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(contextkeys.RoleKey)
	if !ok {
		return false
	}
	role, _ := v.(models.UserRole)
	return role == models.UserRoleAdmin
}
