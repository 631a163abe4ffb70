package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
)

const defaultTokenTTL = 24 * time.Hour

type impl struct {
	jwtSecret []byte
	tokenTTL  time.Duration
	clock     domain.Clock
}

func New(jwtSecret string, tokenTTL time.Duration, clock domain.Clock) domain.AuthUsecase {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &impl{
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		clock:     clock,
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, id user.UserID) (string, error) {
	now := im.clock.Now()
	claims := domain.JwtCustomClaims{
		UserId: id,
		StandardClaims: jwt.StandardClaims{
			Subject:   id.String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(im.tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (user.UserID, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid && !claims.UserId.IsZero() {
		return claims.UserId, nil
	}

	return "", domain.ErrUnauthorized
}
