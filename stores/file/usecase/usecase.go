package usecase

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain"
	"github.com/x-xyz/goauction/domain/file"
	"github.com/x-xyz/goauction/domain/user"
)

const (
	dataUriSchema   = "data:"
	base64Suffix    = ";base64"
	imageMimePrefix = "image/"

	defaultMaxImageSize = 5 << 20
)

type FileUseCaseCfg struct {
	Writer file.Writer
	// MaxImageSize bounds the decoded image in bytes
	MaxImageSize int
}

type impl struct {
	writer  file.Writer
	maxSize int
}

func New(cfg *FileUseCaseCfg) file.Usecase {
	maxSize := cfg.MaxImageSize
	if maxSize <= 0 {
		maxSize = defaultMaxImageSize
	}
	return &impl{
		writer:  cfg.Writer,
		maxSize: maxSize,
	}
}

func (im *impl) UploadImage(c ctx.Ctx, owner user.UserID, dataUri string) (string, error) {
	data, err := im.parseDataUri(dataUri)
	if err != nil {
		return "", err
	}

	// the declared media type is not trusted, the content decides
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), imageMimePrefix) {
		return "", domain.NewValidationError("image", fmt.Sprintf("unsupported content type %s", mtype.String()))
	}

	path := fmt.Sprintf("images/%s/%s%s", owner, uuid.NewString(), mtype.Extension())
	url, err := im.writer.Store(c, path, data, mtype.String())
	if err != nil {
		c.WithFields(log.Fields{"err": err, "path": path}).Error("writer.Store failed")
		return "", domain.NewStorageError(err)
	}
	c.WithField("url", url).Info("image stored")
	return url, nil
}

// parseDataUri decodes data:[<mediatype>][;base64],<data>
func (im *impl) parseDataUri(uri string) ([]byte, error) {
	if !strings.HasPrefix(uri, dataUriSchema) {
		return nil, domain.NewValidationError("image", "invalid data uri")
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, dataUriSchema), ",", 2)
	if len(parts) < 2 || len(parts[1]) == 0 {
		return nil, domain.NewValidationError("image", "no data part provided")
	}
	if !strings.HasSuffix(parts[0], base64Suffix) {
		return nil, domain.NewValidationError("image", "image data must be base64 encoded")
	}
	if base64.StdEncoding.DecodedLen(len(parts[1])) > im.maxSize+2 {
		return nil, domain.NewValidationError("image", "image too large")
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, domain.NewValidationError("image", "invalid base64 data")
	}
	if len(data) > im.maxSize {
		return nil, domain.NewValidationError("image", "image too large")
	}
	return data, nil
}
