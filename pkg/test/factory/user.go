package factory

import (
	"fmt"
	"sync/atomic"
	"time"

	fab "github.com/Goldziher/fabricator"
	"golang.org/x/crypto/bcrypt"

	"projecthub/internal/core/domain"
)

var sequence atomic.Int64

// Sequence returns a process-unique counter so generated emails and
// usernames never collide within a test run.
func Sequence() int64 {
	return sequence.Add(1)
}

// DefaultPassword is the plaintext behind every factory-built credential.
const DefaultPassword = "password1234"

func build[T any](defaults map[string]any, customData []map[string]any) T {
	instance := fab.New(*new(T))

	merged := append([]map[string]any{defaults}, customData...)

	return instance.Build(merged...)
}

func NewUserRecord(customData ...map[string]any) domain.UserRecord {
	n := Sequence()
	hashed, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)

	defaults := map[string]any{
		"ID":        int(n),
		"Email":     fmt.Sprintf("user%d@example.com", n),
		"Username":  fmt.Sprintf("user%d", n),
		"Password":  string(hashed),
		"PersonID":  int(n),
		"Person":    (*domain.Person)(nil),
		"DeletedAt": (*time.Time)(nil),
		"CreatedAt": time.Now(),
		"UpdatedAt": (*time.Time)(nil),
	}

	return build[domain.UserRecord](defaults, customData)
}

func NewUser(customData ...map[string]any) *domain.User {
	rec := NewUserRecord(customData...)

	user, err := domain.ReconstituteUser(rec)
	if err != nil {
		panic(err)
	}

	return user
}
