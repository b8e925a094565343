package auth

import (
	"golang.org/x/crypto/bcrypt"

	"complainthub/backend/internal/models"
)

// DemoUsers returns the built-in credential set. These accounts exist only in
// memory and are checked before the persisted registered users.
func DemoUsers() []models.User {
	return []models.User{
		{
			ID:           1,
			Name:         "Admin User",
			Email:        "admin@example.com",
			PasswordHash: mustHash("admin123"),
			Role:         models.RoleAdmin,
		},
		{
			ID:           2,
			Name:         "Regular User",
			Email:        "user@example.com",
			PasswordHash: mustHash("user123"),
			Role:         models.RoleUser,
		},
	}
}

// mustHash uses the minimum cost: demo credentials are public fixtures and
// startup shouldn't pay interactive-login prices for them.
func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
