package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/advisor/internal/config"
)

type mockStore struct {
	value  string
	ok     bool
	err    error
	called int
}

func (m *mockStore) Name() string { return "mock" }

func (m *mockStore) Lookup(context.Context, string) (string, bool, error) {
	m.called++
	return m.value, m.ok, m.err
}

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		store     *mockStore
		wantKey   string
		wantOK    bool
		wantStore int
	}{
		{
			name:      "environment wins over store",
			env:       map[string]string{"OPENAI_API_KEY": "sk-env"},
			store:     &mockStore{value: "sk-store", ok: true},
			wantKey:   "sk-env",
			wantOK:    true,
			wantStore: 0,
		},
		{
			name:      "store used when env empty",
			env:       map[string]string{"OPENAI_API_KEY": "   "},
			store:     &mockStore{value: "sk-store", ok: true},
			wantKey:   "sk-store",
			wantOK:    true,
			wantStore: 1,
		},
		{
			name:      "neither source",
			env:       map[string]string{},
			store:     &mockStore{},
			wantOK:    false,
			wantStore: 1,
		},
		{
			name:      "store error is not fatal",
			env:       map[string]string{},
			store:     &mockStore{err: errors.New("no secrets store configured")},
			wantOK:    false,
			wantStore: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver("", tt.store)
			r.Getenv = env(tt.env)

			got, ok := r.Resolve(context.Background())
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantKey, got)
			assert.Equal(t, tt.wantStore, tt.store.called)
		})
	}
}

func TestResolveChainOrder(t *testing.T) {
	broken := &mockStore{err: errors.New("boom")}
	empty := &mockStore{}
	second := &mockStore{value: "sk-second", ok: true}
	third := &mockStore{value: "sk-third", ok: true}

	r := NewResolver("GROQ_API_KEY", nil, broken, empty, second, third)
	r.Getenv = env(map[string]string{"OPENAI_API_KEY": "sk-wrong-var"})

	got, ok := r.Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, "sk-second", got)
	assert.Equal(t, 0, third.called)
	assert.Equal(t, "mock", r.Source(context.Background()))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY: sk-file\nOTHER: x\n"), 0600))

	s := NewFileStore(path)
	v, ok, err := s.Lookup(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sk-file", v)

	_, ok, err = s.Lookup(context.Background(), "GROQ_API_KEY")
	require.NoError(t, err)
	assert.False(t, ok)

	missing := NewFileStore(filepath.Join(dir, "missing.yaml"))
	_, ok, err = missing.Lookup(context.Background(), "OPENAI_API_KEY")
	require.NoError(t, err)
	assert.False(t, ok)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("- not\n- a map\n"), 0600))
	_, _, err = NewFileStore(bad).Lookup(context.Background(), "OPENAI_API_KEY")
	assert.Error(t, err)
}

func TestResolveFromFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_API_KEY: sk-file\n"), 0600))

	r := NewResolver("", NewFileStore(path))
	r.Getenv = env(nil)
	got, ok := r.Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, "sk-file", got)
}

func TestConfigStore(t *testing.T) {
	cfg := config.DefaultConfig()
	s := ConfigStore{Config: cfg}

	_, ok, err := s.Lookup(context.Background(), "any")
	require.NoError(t, err)
	assert.False(t, ok)

	cfg.APIKey = "sk-cfg"
	v, ok, err := s.Lookup(context.Background(), "any")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "sk-cfg", v)

	_, ok, _ = ConfigStore{}.Lookup(context.Background(), "any")
	assert.False(t, ok)
}

func TestFromConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GROQ_API_KEY", "")

	cfg := config.DefaultConfig()
	cfg.Provider = "groq"
	cfg.APIKey = "sk-saved"

	r := FromConfig(cfg)
	assert.Equal(t, "GROQ_API_KEY", r.Key)

	got, ok := r.Resolve(context.Background())
	require.True(t, ok)
	assert.Equal(t, "sk-saved", got)
	assert.Equal(t, "config", r.Source(context.Background()))

	t.Setenv("GROQ_API_KEY", "sk-env")
	got, _ = r.Resolve(context.Background())
	assert.Equal(t, "sk-env", got)
}

type namedStore struct {
	name, value string
}

func (n namedStore) Name() string { return n.name }

func (n namedStore) Lookup(context.Context, string) (string, bool, error) {
	return n.value, n.value != "", nil
}

func TestResolveAndSourceAgree(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		stores     []Store
		wantKey    string
		wantSource string
	}{
		{"env", map[string]string{"OPENAI_API_KEY": " sk-env "}, []Store{namedStore{"file", "sk-file"}}, "sk-env", "env:OPENAI_API_KEY"},
		{"first store holding a value", nil, []Store{namedStore{"file", ""}, namedStore{"config", "sk-config"}}, "sk-config", "config"},
		{"blank store value skipped", nil, []Store{namedStore{"file", "  "}, namedStore{"scy", "sk-scy"}}, "sk-scy", "scy"},
		{"nothing", nil, []Store{namedStore{"file", ""}}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver("", tt.stores...)
			r.Getenv = env(tt.env)

			got, ok := r.Resolve(context.Background())
			assert.Equal(t, tt.wantKey, got)
			assert.Equal(t, tt.wantKey != "", ok)
			assert.Equal(t, tt.wantSource, r.Source(context.Background()))
		})
	}
}

func TestScyStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openai.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Key":"openai","Secret":"sk-scy-123"}`), 0600))

	t.Run("file resource", func(t *testing.T) {
		s := NewScyStore(path)
		v, ok, err := s.Lookup(context.Background(), "OPENAI_API_KEY")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "sk-scy-123", v)
		assert.Equal(t, "scy:"+path, s.Name())
	})

	t.Run("empty url", func(t *testing.T) {
		v, ok, err := NewScyStore("").Lookup(context.Background(), "OPENAI_API_KEY")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("missing resource", func(t *testing.T) {
		_, ok, err := NewScyStore(filepath.Join(dir, "absent.json")).Lookup(context.Background(), "OPENAI_API_KEY")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("resolver falls through to scy", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("OPENAI_API_KEY", "")

		cfg := config.DefaultConfig()
		cfg.SecretsURL = path
		r := FromConfig(cfg)

		got, ok := r.Resolve(context.Background())
		require.True(t, ok)
		assert.Equal(t, "sk-scy-123", got)
		assert.Equal(t, "scy:"+path, r.Source(context.Background()))
	})
}
