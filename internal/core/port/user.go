package port

import (
	"context"

	"projecthub/internal/core/domain"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type UserFilter struct {
	Offset int
	Limit  int

	PersonID       *int
	Email          string
	Username       string
	IncludeDeleted bool
	OnlyDeleted    bool

	SortBy    string
	SortOrder SortOrder
}

type UserFilterResult struct {
	Users []*domain.User
	Total int
}

type UserRepository interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindAll(ctx context.Context, filter UserFilter) (*UserFilterResult, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int) error

	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	ExistsByID(ctx context.Context, id int) (bool, error)
	ExistsByEmail(ctx context.Context, email string, excludeId int) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeId int) (bool, error)
}

type PersonFilter struct {
	Offset int
	Limit  int

	FirstName      string
	LastName       string
	IncludeDeleted bool
	OnlyDeleted    bool

	SortBy    string
	SortOrder SortOrder
}

type PersonFilterResult struct {
	Persons []*domain.Person
	Total   int
}

type PersonRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Person, error)
	FindAll(ctx context.Context, filter PersonFilter) (*PersonFilterResult, error)
	Save(ctx context.Context, person *domain.Person) (*domain.Person, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
}
