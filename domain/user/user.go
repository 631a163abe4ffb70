package user

import (
	"time"

	"github.com/x-xyz/goauction/base/ctx"
)

// UserID identifies a user everywhere a user is referenced
type UserID string

func (id UserID) String() string {
	return string(id)
}

// IsZero reports an absent user reference
func (id UserID) IsZero() bool {
	return id == ""
}

// User is a registered marketplace user stored in database
type User struct {
	Id          UserID    `json:"id" bson:"_id"`
	Username    string    `json:"username" bson:"username"`
	DisplayName string    `json:"displayName" bson:"displayName"`
	Email       string    `json:"email,omitempty" bson:"email"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// UserRef is the public face of a user used by auctions and bids
type UserRef struct {
	Id          UserID `json:"id"`
	DisplayName string `json:"displayName"`
}

func (u *User) ToRef() *UserRef {
	name := u.DisplayName
	if name == "" {
		name = u.Username
	}
	return &UserRef{Id: u.Id, DisplayName: name}
}

type RegisterParams struct {
	Username    string `json:"username" validate:"required,min=3,max=32,alphanum"`
	DisplayName string `json:"displayName" validate:"max=64"`
	Email       string `json:"email" validate:"omitempty,email"`
}

// Registered is returned on sign up with the bearer token of the new user
type Registered struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type Repo interface {
	Get(c ctx.Ctx, id UserID) (*User, error)
	FindByUsername(c ctx.Ctx, username string) (*User, error)
	Insert(c ctx.Ctx, u *User) error
}

type UseCase interface {
	Register(c ctx.Ctx, params *RegisterParams) (*Registered, error)
	Get(c ctx.Ctx, id UserID) (*User, error)
}

// Lookup resolves user references, failing with ErrNotFound for unknown ids
type Lookup interface {
	ById(c ctx.Ctx, id UserID) (*UserRef, error)
}
