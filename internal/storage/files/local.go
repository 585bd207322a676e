// Package files manages the on-disk area holding study attachments.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideArea = errors.New("path escapes the documents area")

// LocalArea is a directory tree that study attachments are stored under.
// Stored locations may carry the area's directory name as a prefix
// ("documents/abc.pdf") or be relative to it ("abc.pdf").
type LocalArea struct {
	root string
	name string
}

func NewLocalArea(root string) (*LocalArea, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve documents dir: %w", err)
	}
	return &LocalArea{root: abs, name: filepath.Base(abs)}, nil
}

func (a *LocalArea) Root() string { return a.root }

// Resolve maps a stored location to an absolute path inside the area.
func (a *LocalArea) Resolve(location string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(strings.TrimSpace(location)))
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if first, rest, ok := strings.Cut(rel, string(filepath.Separator)); ok && first == a.name {
		rel = rest
	}
	if rel == "" || rel == "." || rel == a.name {
		return "", ErrOutsideArea
	}

	full := filepath.Join(a.root, rel)
	inside, err := filepath.Rel(a.root, full)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return "", ErrOutsideArea
	}
	return full, nil
}

// Remove deletes the file at location. A file that is already gone is not
// an error.
func (a *LocalArea) Remove(location string) error {
	path, err := a.Resolve(location)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", location, err)
	}
	return nil
}
