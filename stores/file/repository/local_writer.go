package repository

import (
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"github.com/x-xyz/goauction/base/ctx"
	"github.com/x-xyz/goauction/base/log"
	"github.com/x-xyz/goauction/domain/file"
)

type localWriter struct {
	root    string
	baseUrl *url.URL
}

// NewLocalWriter stores blobs under root, served by the api at baseUrl
func NewLocalWriter(root, baseUrl string) (file.Writer, error) {
	u, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, xerrors.Errorf("failed to create %s: %w", root, err)
	}
	return &localWriter{root: root, baseUrl: u}, nil
}

func (r *localWriter) Store(c ctx.Ctx, path string, body []byte, _ string) (string, error) {
	contentPath, err := url.Parse(path)
	if err != nil {
		c.WithFields(log.Fields{"path": path, "err": err}).Error("url.Parse failed")
		return "", err
	}

	dst := filepath.Join(r.root, filepath.FromSlash(filepath.Clean("/"+path)))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		c.WithField("err", err).Error("os.MkdirAll failed")
		return "", err
	}
	if err := os.WriteFile(dst, body, 0o644); err != nil {
		c.WithField("err", err).Error("os.WriteFile failed")
		return "", err
	}
	return r.baseUrl.ResolveReference(contentPath).String(), nil
}
