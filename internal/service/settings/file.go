package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/kapu/movie-picker-go/pkg/errors"
	"go.uber.org/zap"
)

// FileStore keeps settings in a JSON object on disk. Values of any JSON type
// written by other tools survive a Set; only string values are reported by
// Load.
type FileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns the string-valued keys of the document. A missing file is an
// empty document.
func (s *FileStore) Load(ctx context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return map[string]string{}, err
	}

	values := make(map[string]string, len(doc))
	for key, raw := range doc {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		values[key] = v
	}
	return values, nil
}

// Set rewrites the document with key replaced.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return errors.NewSettingsError("marshal failed", "set", key, err)
	}
	doc[key] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.NewSettingsError("marshal failed", "set", key, err)
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.Error("Settings write failed", zap.String("path", s.path), zap.String("key", key), zap.Error(err))
		return errors.NewSettingsError("write failed", "set", key, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) readDocument() (map[string]json.RawMessage, error) {
	doc := make(map[string]json.RawMessage)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, errors.NewSettingsError("read failed", "load", s.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewSettingsError("parse failed", "load", s.path, err)
	}
	if doc == nil {
		doc = make(map[string]json.RawMessage)
	}
	return doc, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
