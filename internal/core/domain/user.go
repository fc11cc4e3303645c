package domain

import (
	"regexp"
	"strings"
	"time"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 8
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User is the login identity. Password always holds an already-hashed
// string; plaintext never reaches the entity.
type User struct {
	id        int
	email     string
	username  string
	password  string
	personId  int
	person    *Person
	deletedAt *time.Time
	createdAt time.Time
	updatedAt *time.Time
}

type UserRecord struct {
	ID        int
	Email     string
	Username  string
	Password  string
	PersonID  int
	Person    *Person
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewUser creates an unsaved user (id 0) for registration.
func NewUser(email, username, hashedPassword string, personId int) (*User, error) {
	u := &User{
		id:        0,
		email:     email,
		username:  username,
		password:  hashedPassword,
		personId:  personId,
		createdAt: time.Now(),
	}

	if err := u.validate(); err != nil {
		return nil, err
	}

	return u, nil
}

// ReconstituteUser rehydrates a user from storage. The attached Person
// is optional and only present when the repository eager-loaded it.
func ReconstituteUser(rec UserRecord) (*User, error) {
	u := &User{
		id:        rec.ID,
		email:     rec.Email,
		username:  rec.Username,
		password:  rec.Password,
		personId:  rec.PersonID,
		person:    rec.Person,
		deletedAt: rec.DeletedAt,
		createdAt: rec.CreatedAt,
		updatedAt: rec.UpdatedAt,
	}

	if err := u.validate(); err != nil {
		return nil, err
	}

	return u, nil
}

func (u *User) validate() error {
	if u.id < 0 {
		return NewValidationError("ID must be a non-negative integer")
	}

	if err := validateEmail(u.email); err != nil {
		return err
	}

	if err := validateUsername(u.username); err != nil {
		return err
	}

	if err := validatePassword(u.password); err != nil {
		return err
	}

	if u.personId < 0 {
		return NewValidationError("Person ID must be a non-negative integer")
	}

	return nil
}

func validateEmail(value string) error {
	email := strings.TrimSpace(value)

	if email == "" || !emailRegex.MatchString(email) {
		return NewValidationError("Valid email is required")
	}

	return nil
}

func validateUsername(value string) error {
	username := strings.TrimSpace(value)

	if username == "" {
		return NewValidationError("Username cannot be empty")
	}

	if len(username) < minUsernameLength {
		return NewValidationError("Username must be at least %d characters", minUsernameLength)
	}

	if len(username) > maxUsernameLength {
		return NewValidationError("Username cannot exceed %d characters", maxUsernameLength)
	}

	return nil
}

func validatePassword(value string) error {
	if value == "" {
		return NewValidationError("Password is required")
	}

	if len(value) < minPasswordLength {
		return NewValidationError("Password must be at least %d characters", minPasswordLength)
	}

	return nil
}

func (u *User) ID() int               { return u.id }
func (u *User) Email() string         { return u.email }
func (u *User) Username() string      { return u.username }
func (u *User) Password() string      { return u.password }
func (u *User) PersonID() int         { return u.personId }
func (u *User) Person() *Person       { return u.person }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() *time.Time { return u.updatedAt }
func (u *User) DeletedAt() *time.Time { return u.deletedAt }

func (u *User) IsDeleted() bool {
	return u.deletedAt != nil
}

// FirstName proxies to the attached person; empty when not loaded.
func (u *User) FirstName() string {
	if u.person == nil {
		return ""
	}
	return u.person.FirstName()
}

func (u *User) LastName() string {
	if u.person == nil {
		return ""
	}
	return u.person.LastName()
}

func (u *User) FullName() string {
	if u.person == nil {
		return ""
	}
	return u.person.FullName()
}

func (u *User) UpdateEmail(email string) error {
	if u.IsDeleted() {
		return NewValidationError("Cannot update deleted user")
	}

	if err := validateEmail(email); err != nil {
		return err
	}

	u.email = email
	u.touch()

	return nil
}

func (u *User) UpdateUsername(username string) error {
	if u.IsDeleted() {
		return NewValidationError("Cannot update deleted user")
	}

	if err := validateUsername(username); err != nil {
		return err
	}

	u.username = username
	u.touch()

	return nil
}

// UpdatePassword expects an already-hashed string, same as NewUser.
func (u *User) UpdatePassword(hashedPassword string) error {
	if u.IsDeleted() {
		return NewValidationError("Cannot update deleted user")
	}

	if err := validatePassword(hashedPassword); err != nil {
		return err
	}

	u.password = hashedPassword
	u.touch()

	return nil
}

func (u *User) Delete() error {
	if u.IsDeleted() {
		return NewValidationError("User is already deleted")
	}

	now := time.Now()
	u.deletedAt = &now
	u.updatedAt = &now

	return nil
}

func (u *User) Restore() error {
	if !u.IsDeleted() {
		return NewValidationError("User is not deleted")
	}

	u.deletedAt = nil
	u.touch()

	return nil
}

func (u *User) touch() {
	now := time.Now()
	u.updatedAt = &now
}

func (u *User) Record() UserRecord {
	return UserRecord{
		ID:        u.id,
		Email:     u.email,
		Username:  u.username,
		Password:  u.password,
		PersonID:  u.personId,
		Person:    u.person,
		DeletedAt: u.deletedAt,
		CreatedAt: u.createdAt,
		UpdatedAt: u.updatedAt,
	}
}
