// Package storage is the local-disk fallback for uploaded binaries.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/you/assetsvc/domain"
)

var blockedExtensions = map[string]struct{}{
	".exe": {}, ".bat": {}, ".cmd": {}, ".sh": {}, ".com": {}, ".pif": {}, ".scr": {},
}

// LocalStorageImpl implements domain.LocalStorage on a directory served under publicPrefix
type LocalStorageImpl struct {
	dir          string
	publicPrefix string
	maxBytes     int64
}

// NewLocalStorage creates dir if needed
func NewLocalStorage(dir, publicPrefix string, maxBytes int64) (*LocalStorageImpl, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if !strings.HasSuffix(publicPrefix, "/") {
		publicPrefix += "/"
	}
	return &LocalStorageImpl{dir: dir, publicPrefix: publicPrefix, maxBytes: maxBytes}, nil
}

// IsBlocked reports whether originalName carries an executable extension
func IsBlocked(originalName string) bool {
	_, blocked := blockedExtensions[strings.ToLower(filepath.Ext(originalName))]
	return blocked
}

// Save writes r under a random name keeping the original extension
func (s *LocalStorageImpl) Save(ctx context.Context, originalName string, r io.Reader) (*domain.StoredFile, error) {
	if originalName == "" {
		return nil, domain.ErrNoFile
	}
	if IsBlocked(originalName) {
		return nil, domain.ErrBlockedFileType
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	target := filepath.Join(s.dir, name)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	// Read one byte past the limit to detect oversize input
	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && n > s.maxBytes {
		err = domain.ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(target)
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("write %s: %w", name, err)
	}

	return &domain.StoredFile{
		FileURL:      s.publicPrefix + name,
		Filename:     name,
		OriginalName: filepath.Base(originalName),
	}, nil
}

var _ domain.LocalStorage = (*LocalStorageImpl)(nil)
