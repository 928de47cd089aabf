// Package identity manages the stable pseudo-random user id attached to
// telemetry records. The id lives in a single local file, is created lazily
// on first use, and is never rotated or expired.
package identity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Store struct {
	path   string
	logger *zap.Logger

	mu     sync.Mutex
	cached string
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Get returns the persisted user id, generating and writing one if the
// store is empty. The value is cached after the first call.
func (s *Store) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != "" {
		return s.cached, nil
	}

	data, err := os.ReadFile(s.path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			s.cached = id
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading identity file: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("creating identity directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing identity file: %w", err)
	}

	s.logger.Info("Generated new user id", zap.String("path", s.path))
	s.cached = id
	return id, nil
}
