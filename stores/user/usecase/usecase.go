package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	bv "github.com/x-xyz/goauction/base/validator"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/user"
)

type UserUseCaseCfg struct {
	Repo      user.Repo
	Auth      domain.AuthUsecase
	Validator *validator.Validate
	Clock     domain.Clock
}

type impl struct {
	repo     user.Repo
	auth     domain.AuthUsecase
	validate *validator.Validate
	clock    domain.Clock
}

func New(cfg *UserUseCaseCfg) user.UseCase {
	clock := cfg.Clock
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &impl{
		repo:     cfg.Repo,
		auth:     cfg.Auth,
		validate: cfg.Validator,
		clock:    clock,
	}
}

func validationErrorOf(err error) error {
	if field, tag, ok := bv.FirstFailure(err); ok {
		return domain.NewValidationError(field, "failed on "+tag)
	}
	return domain.NewValidationError("", err.Error())
}

func (im *impl) Register(c ctx.Ctx, params *user.RegisterParams) (*user.Registered, error) {
	if err := im.validate.Struct(params); err != nil {
		return nil, validationErrorOf(err)
	}

	if _, err := im.repo.FindByUsername(c, params.Username); err == nil {
		return nil, xerrors.Errorf("username %s taken: %w", params.Username, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		c.WithField("err", err).Error("repo.FindByUsername failed")
		return nil, err
	}

	u := &user.User{
		Id:          user.UserID(uuid.NewString()),
		Username:    params.Username,
		DisplayName: params.DisplayName,
		Email:       params.Email,
		CreatedAt:   im.clock.Now(),
	}
	if err := im.repo.Insert(c, u); err != nil {
		c.WithField("err", err).Error("repo.Insert failed")
		return nil, err
	}

	token, err := im.auth.SignToken(c, u.Id)
	if err != nil {
		c.WithField("err", err).Error("auth.SignToken failed")
		return nil, err
	}

	return &user.Registered{User: u, Token: token}, nil
}

func (im *impl) Get(c ctx.Ctx, id user.UserID) (*user.User, error) {
	if id.IsZero() {
		return nil, domain.NewValidationError("id", "required")
	}
	u, err := im.repo.Get(c, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.WithField("err", err).Error("repo.Get failed")
		}
		return nil, err
	}
	return u, nil
}
