package auth

import (
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mesero-nana/api/internal/enum"
)

// User is an account that can sign in to the system.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
}

// DefaultUsers returns the built-in accounts. Passwords are hashed at
// startup so no plaintext or precomputed hash ships in the binary.
func DefaultUsers() []User {
	return []User{
		newUser("admin", "admin123", "Administrador", enum.UserRoleAdmin),
		newUser("mesero1", "mesero123", "Mesero Principal", enum.UserRoleMesero),
		newUser("cocinero1", "cocina123", "Cocinero Principal", enum.UserRoleCocinero),
	}
}

func newUser(username, password, name, role string) User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash default password for %s: %v", username, err)
	}
	return User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
}
