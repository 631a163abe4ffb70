package usecase

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
	"github.com/x-xyz/goauction/service/cache"
)

type lookupImpl struct {
	repo  user.Repo
	cache cache.Service
}

// NewLookup resolves user references through cache, unknown ids are not cached
func NewLookup(repo user.Repo, cache cache.Service) user.Lookup {
	return &lookupImpl{repo: repo, cache: cache}
}

func (im *lookupImpl) ById(c ctx.Ctx, id user.UserID) (*user.UserRef, error) {
	res := &user.UserRef{}
	if err := im.cache.GetByFunc(c, id.String(), res, func() (interface{}, error) {
		u, err := im.repo.Get(c, id)
		if err != nil {
			return nil, err
		}
		return u.ToRef(), nil
	}); err != nil {
		return nil, err
	}
	return res, nil
}
