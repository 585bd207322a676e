// Package activitylog exposes the chat and study-click logs written by the
// research platform.
package activitylog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/r2c-platform/admin-backend/internal/apierr"
)

const (
	ChatHistoryFile = "chat_history.log"
	StudyClicksFile = "study_clicks.log"
)

var ErrNotConfigured = apierr.New(apierr.UpstreamFailure, "server configuration error: log directory path not specified")

type Logs struct {
	ChatHistory string `json:"chatHistory"`
	StudyClicks string `json:"studyClicks"`
}

type Reader struct {
	dir string
}

func NewReader(dir string) *Reader {
	return &Reader{dir: dir}
}

// Read returns both logs. A missing file reads as empty.
func (r *Reader) Read() (*Logs, error) {
	if r.dir == "" {
		return nil, ErrNotConfigured
	}

	chat, err := r.readFile(ChatHistoryFile)
	if err != nil {
		return nil, err
	}
	clicks, err := r.readFile(StudyClicksFile)
	if err != nil {
		return nil, err
	}
	return &Logs{ChatHistory: chat, StudyClicks: clicks}, nil
}

func (r *Reader) readFile(name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(r.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(b), nil
}
