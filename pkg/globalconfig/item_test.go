package globalconfig_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251216-go-pkg-plugutil/pkg/globalconfig"
)

type settings struct {
	URL      string        `json:"url"`
	Timeout  time.Duration `json:"timeout"`
	Patterns []string      `json:"patterns"`
	Enabled  bool          `json:"enabled"`
}

func defaultSettings() settings {
	return settings{URL: "http://localhost:8080/", Timeout: time.Minute}
}

func TestItem_LoadAndSaveUseStore(t *testing.T) {
	stored := settings{URL: "https://ci.example.com/", Patterns: []string{"**/*.xml"}}
	store := globalconfig.NewMemoryStore(&stored)
	item := globalconfig.NewItem[settings](store, defaultSettings())

	assert.Equal(t, defaultSettings(), item.Get(), "NewItem does not load")

	require.NoError(t, item.Load())
	assert.Equal(t, stored, item.Get())

	require.NoError(t, item.Save())
	loads, saves := store.Counts()
	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, saves)
}

func TestItem_LoadWithoutStoredDataKeepsDefaults(t *testing.T) {
	store := globalconfig.NewMemoryStore[settings](nil)
	item := globalconfig.NewItem[settings](store, defaultSettings())

	require.NoError(t, item.Load())
	assert.Equal(t, defaultSettings(), item.Get())

	_, ok := store.Saved()
	assert.False(t, ok)
}

func TestItem_Errors(t *testing.T) {
	boom := errors.New("boom")
	store := globalconfig.NewMemoryStore[settings](nil)
	store.LoadFn = func(current settings) (settings, error) { return current, boom }
	store.SaveFn = func(settings) error { return boom }

	item := globalconfig.NewItem[settings](store, defaultSettings())

	err := item.Load()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "load global configuration")

	err = item.Save()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "save global configuration")
}

func TestItem_Update(t *testing.T) {
	store := globalconfig.NewMemoryStore[settings](nil)
	item := globalconfig.NewItem[settings](store, defaultSettings())

	require.NoError(t, item.Update(func(s *settings) { s.Enabled = true }))

	saved, ok := store.Saved()
	require.True(t, ok)
	assert.True(t, saved.Enabled)
	assert.True(t, item.Get().Enabled)
}

func TestItem_ConfigureClearsRepeatablePropertiesFirst(t *testing.T) {
	initial := defaultSettings()
	initial.Patterns = []string{"a", "b", "c"}

	var cleared bool
	store := globalconfig.NewMemoryStore[settings](nil)
	item := globalconfig.NewItem[settings](store, initial,
		globalconfig.WithClearRepeatable(func(s *settings) {
			cleared = true
			s.Patterns = nil
		}),
	)

	err := item.Configure(map[string]any{
		"url":      "https://jenkins.example.com/",
		"timeout":  "10s",
		"enabled":  "true",
		"patterns": []any{"x"},
	})
	require.NoError(t, err)

	assert.True(t, cleared)
	got := item.Get()
	assert.Equal(t, "https://jenkins.example.com/", got.URL)
	assert.Equal(t, 10*time.Second, got.Timeout)
	assert.True(t, got.Enabled)
	assert.Equal(t, []string{"x"}, got.Patterns)

	saved, ok := store.Saved()
	require.True(t, ok)
	assert.Equal(t, got, saved)
}

func TestItem_ConfigureWithoutRepeatableEntries(t *testing.T) {
	initial := defaultSettings()
	initial.Patterns = []string{"a"}

	item := globalconfig.NewItem[settings](globalconfig.NewMemoryStore[settings](nil), initial,
		globalconfig.WithClearRepeatable(func(s *settings) { s.Patterns = nil }),
	)

	require.NoError(t, item.Configure(map[string]any{"url": "u"}))
	assert.Empty(t, item.Get().Patterns, "removed repeatable entries do not survive")
}

func TestItem_ConfigureInvalidFormKeepsSettings(t *testing.T) {
	store := globalconfig.NewMemoryStore[settings](nil)
	item := globalconfig.NewItem[settings](store, defaultSettings())

	err := item.Configure(map[string]any{"timeout": "not a duration"})
	require.Error(t, err)

	assert.Equal(t, defaultSettings(), item.Get())
	_, saves := store.Counts()
	assert.Zero(t, saves)
}

// trackingStore 记录同时进入存储的最大并发数。
type trackingStore struct {
	mu        sync.Mutex
	active    int
	maxActive int
}

func (s *trackingStore) enter() func() {
	s.mu.Lock()
	s.active++
	s.maxActive = max(s.maxActive, s.active)
	s.mu.Unlock()
	time.Sleep(time.Millisecond)

	return func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}
}

func (s *trackingStore) Load(current settings) (settings, error) {
	defer s.enter()()

	return current, nil
}

func (s *trackingStore) Save(settings) error {
	defer s.enter()()

	return nil
}

func TestItem_ConcurrentLoadSaveAreSerialized(t *testing.T) {
	store := &trackingStore{}
	item := globalconfig.NewItem[settings](store, defaultSettings())

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() { _ = item.Load() })
		wg.Go(func() { _ = item.Save() })
		wg.Go(func() { _ = item.Update(func(s *settings) { s.Enabled = !s.Enabled }) })
	}
	wg.Wait()

	assert.Equal(t, 1, store.maxActive)
}
