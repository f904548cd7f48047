package credential

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/viant/scy/cred/secret"
	"gopkg.in/yaml.v3"

	"github.com/sant0-9/advisor/internal/config"
)

// FileStore reads a flat YAML map of secret names to values.
// A missing file holds nothing.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Name() string {
	return "file:" + f.Path
}

func (f *FileStore) Lookup(_ context.Context, key string) (string, bool, error) {
	if f.Path == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	var secrets map[string]string
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return "", false, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	v, ok := secrets[key]
	return v, ok, nil
}

// ConfigStore returns the api_key saved in config.yaml. It reads the config
// on every lookup so a key entered in the settings view is picked up.
type ConfigStore struct {
	Config *config.Config
}

func (c ConfigStore) Name() string {
	return "config"
}

func (c ConfigStore) Lookup(context.Context, string) (string, bool, error) {
	if c.Config == nil {
		return "", false, nil
	}
	return c.Config.APIKey, c.Config.APIKey != "", nil
}

// ScyStore decodes the key from a scy secret resource URL.
type ScyStore struct {
	URL     string
	secrets *secret.Service
}

func NewScyStore(URL string) *ScyStore {
	return &ScyStore{URL: URL, secrets: secret.New()}
}

func (s *ScyStore) Name() string {
	return "scy:" + s.URL
}

func (s *ScyStore) Lookup(ctx context.Context, _ string) (string, bool, error) {
	if s.URL == "" {
		return "", false, nil
	}
	key, err := s.secrets.GeyKey(ctx, s.URL)
	if err != nil {
		return "", false, err
	}
	if key == nil {
		return "", false, nil
	}
	return key.Secret, key.Secret != "", nil
}
