// Package assets persists uploaded picture files on the local filesystem
// and owns the naming policy for them: a fixed-width random hex token plus
// the original extension, checked against an image allow-list. The random
// token is what keeps concurrent uploads from colliding.
package assets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
)

const tokenBytes = 16

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// NewFilename generates a collision-resistant filename for an upload,
// keeping the original file's extension. Disallowed extensions are
// rejected before anything touches disk.
func NewFilename(originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", apierr.InvalidArgument("file extension %q is not an allowed image type", ext)
	}
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate upload token: %w", err)
	}
	return hex.EncodeToString(buf) + ext, nil
}

// Store writes uploads in two phases: Stage puts the bytes under a
// temporary name, and only after the filename has been associated with its
// product row does Commit promote the file to its final name. Discard
// drops a staged file whose association failed, so failed uploads leave no
// orphans behind.
type Store interface {
	Stage(filename string, data []byte) error
	Commit(filename string) error
	Discard(filename string)
	Root() string
}

type localStore struct {
	root string
	log  *logger.Logger
}

func NewLocalStore(root string, baseLog *logger.Logger) (Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir %s: %w", root, err)
	}
	return &localStore{root: root, log: baseLog.With("service", "AssetStore")}, nil
}

func (s *localStore) Root() string { return s.root }

func (s *localStore) stagePath(filename string) string {
	return filepath.Join(s.root, filename+".tmp")
}

func (s *localStore) finalPath(filename string) string {
	return filepath.Join(s.root, filename)
}

func (s *localStore) Stage(filename string, data []byte) error {
	if err := os.WriteFile(s.stagePath(filename), data, 0o644); err != nil {
		return fmt.Errorf("stage upload %s: %w", filename, err)
	}
	return nil
}

func (s *localStore) Commit(filename string) error {
	if err := os.Rename(s.stagePath(filename), s.finalPath(filename)); err != nil {
		return fmt.Errorf("commit upload %s: %w", filename, err)
	}
	s.log.Debug("upload committed", "filename", filename)
	return nil
}

func (s *localStore) Discard(filename string) {
	if err := os.Remove(s.stagePath(filename)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to discard staged upload", "filename", filename, "error", err)
	}
}
