package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
)

type JwtCustomClaims struct {
	UserId user.UserID `json:"uid"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(c ctx.Ctx, id user.UserID) (string, error)
	ParseToken(c ctx.Ctx, token string) (user.UserID, error)
}
