package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, под которым *gorm.DB лежит в context и в gin.Context
const DBContextKey = contextKey("db")

// Ключи gin.Context, которые выставляет AccessGuard.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	UserKey   = "user"
)
