package file

import (
	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/domain/user"
)

// Writer stores a blob and returns the public url it is served from
type Writer interface {
	Store(c ctx.Ctx, path string, body []byte, contentType string) (url string, err error)
}

type Usecase interface {
	// UploadImage accepts a data uri and returns the url of the stored image
	UploadImage(c ctx.Ctx, owner user.UserID, dataUri string) (url string, err error)
}
