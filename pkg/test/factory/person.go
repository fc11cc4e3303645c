package factory

import (
	"fmt"
	"time"

	"projecthub/internal/core/domain"
)

func NewPersonRecord(customData ...map[string]any) domain.PersonRecord {
	n := Sequence()

	defaults := map[string]any{
		"ID":        int(n),
		"FirstName": fmt.Sprintf("First%d", n),
		"LastName":  fmt.Sprintf("Last%d", n),
		"DeletedAt": (*time.Time)(nil),
		"CreatedAt": time.Now(),
		"UpdatedAt": (*time.Time)(nil),
	}

	return build[domain.PersonRecord](defaults, customData)
}

func NewPerson(customData ...map[string]any) *domain.Person {
	rec := NewPersonRecord(customData...)

	person, err := domain.ReconstitutePerson(rec)
	if err != nil {
		panic(err)
	}

	return person
}
