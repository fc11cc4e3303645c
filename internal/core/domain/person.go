package domain

import (
	"strings"
	"time"
)

const maxNameLength = 100

// Person holds the display identity of an individual, independent of
// login credentials. A User references a Person by id.
type Person struct {
	id        int
	firstName string
	lastName  string
	deletedAt *time.Time
	createdAt time.Time
	updatedAt *time.Time
}

type PersonRecord struct {
	ID        int
	FirstName string
	LastName  string
	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// NewPerson creates an unsaved person (id 0).
func NewPerson(firstName, lastName string) (*Person, error) {
	p := &Person{
		id:        0,
		firstName: firstName,
		lastName:  lastName,
		createdAt: time.Now(),
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// ReconstitutePerson rehydrates a person from storage.
func ReconstitutePerson(rec PersonRecord) (*Person, error) {
	p := &Person{
		id:        rec.ID,
		firstName: rec.FirstName,
		lastName:  rec.LastName,
		deletedAt: rec.DeletedAt,
		createdAt: rec.CreatedAt,
		updatedAt: rec.UpdatedAt,
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Person) validate() error {
	if p.id < 0 {
		return NewValidationError("ID must be a non-negative integer")
	}

	if err := validatePersonName("First name", p.firstName); err != nil {
		return err
	}

	return validatePersonName("Last name", p.lastName)
}

func validatePersonName(field, value string) error {
	name := strings.TrimSpace(value)

	if name == "" {
		return NewValidationError("%s cannot be empty", field)
	}

	if len(name) > maxNameLength {
		return NewValidationError("%s cannot exceed %d characters", field, maxNameLength)
	}

	return nil
}

func (p *Person) ID() int               { return p.id }
func (p *Person) FirstName() string     { return p.firstName }
func (p *Person) LastName() string      { return p.lastName }
func (p *Person) CreatedAt() time.Time  { return p.createdAt }
func (p *Person) UpdatedAt() *time.Time { return p.updatedAt }
func (p *Person) DeletedAt() *time.Time { return p.deletedAt }

func (p *Person) FullName() string {
	return p.firstName + " " + p.lastName
}

func (p *Person) IsDeleted() bool {
	return p.deletedAt != nil
}

func (p *Person) UpdateFirstName(firstName string) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted person")
	}

	if err := validatePersonName("First name", firstName); err != nil {
		return err
	}

	p.firstName = firstName
	p.touch()

	return nil
}

func (p *Person) UpdateLastName(lastName string) error {
	if p.IsDeleted() {
		return NewValidationError("Cannot update deleted person")
	}

	if err := validatePersonName("Last name", lastName); err != nil {
		return err
	}

	p.lastName = lastName
	p.touch()

	return nil
}

func (p *Person) Delete() error {
	if p.IsDeleted() {
		return NewValidationError("Person is already deleted")
	}

	now := time.Now()
	p.deletedAt = &now
	p.updatedAt = &now

	return nil
}

func (p *Person) Restore() error {
	if !p.IsDeleted() {
		return NewValidationError("Person is not deleted")
	}

	p.deletedAt = nil
	p.touch()

	return nil
}

func (p *Person) touch() {
	now := time.Now()
	p.updatedAt = &now
}

// Record flattens the entity for persistence.
func (p *Person) Record() PersonRecord {
	return PersonRecord{
		ID:        p.id,
		FirstName: p.firstName,
		LastName:  p.lastName,
		DeletedAt: p.deletedAt,
		CreatedAt: p.createdAt,
		UpdatedAt: p.updatedAt,
	}
}
