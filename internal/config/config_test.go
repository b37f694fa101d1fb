package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/inkwell/internal/config/loader"
	"github.com/dshills/inkwell/internal/dispatcher/execctx"
	"github.com/dshills/inkwell/internal/event"
	"github.com/dshills/inkwell/internal/input/key"
	"github.com/dshills/inkwell/internal/input/keymap"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, execctx.DefaultFeatures(), cfg.Features())
}

func TestMapRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Editor.DisabledActions = []string{"format.bold"}
	cfg.Keymap.Bindings["C-k"] = "format.bold"
	cfg.Keymap.Files = []string{"markdown.toml"}
	cfg.Plugins.Scripts = []string{"hooks.lua"}

	m, err := cfg.ToMap()
	require.NoError(t, err)
	back, err := FromMap(m)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	back, err = FromMap(map[string]any{"editor": map[string]any{"disabledActions": []any{}}})
	require.NoError(t, err)
	assert.Nil(t, back.Editor.DisabledActions)
}

func TestLoadLayers(t *testing.T) {
	fsys := fstest.MapFS{
		"inkwell.toml": {Data: []byte(`
[editor]
wikiLinks = false
disabledActions = ["cursor.lineEnd"]

[logging]
level = "debug"

[keymap.bindings]
"C-k" = "format.bold"
`)},
		"inkwell.yaml": {Data: []byte(`
editor:
  unixKeys: false
plugins:
  scripts: [hooks.lua]
  instructionLimit: 50
`)},
	}

	t.Run("toml", func(t *testing.T) {
		cfg, err := Load(Options{Path: "inkwell.toml", FS: fsys, SkipEnv: true})
		require.NoError(t, err)
		assert.True(t, cfg.Editor.AutoPair, "default lost")
		assert.False(t, cfg.Editor.WikiLinks)
		assert.Equal(t, []string{"cursor.lineEnd"}, cfg.Editor.DisabledActions)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, map[string]string{"C-k": "format.bold"}, cfg.Keymap.Bindings)
	})

	t.Run("yaml", func(t *testing.T) {
		cfg, err := Load(Options{Path: "inkwell.yaml", FS: fsys, SkipEnv: true})
		require.NoError(t, err)
		assert.False(t, cfg.Editor.UnixKeys)
		assert.True(t, cfg.Editor.BoldToggle)
		assert.Equal(t, []string{"hooks.lua"}, cfg.Plugins.Scripts)
		assert.Equal(t, 50, cfg.Plugins.InstructionLimit)
	})

	t.Run("env wins", func(t *testing.T) {
		t.Setenv("INKWELLTEST_LOG_LEVEL", "warn")
		t.Setenv("INKWELLTEST_EDITOR_READ_ONLY", "true")
		cfg, err := Load(Options{Path: "inkwell.toml", FS: fsys, EnvPrefix: "INKWELLTEST_"})
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.True(t, cfg.Editor.ReadOnly)
	})

	t.Run("missing file keeps defaults", func(t *testing.T) {
		cfg, err := Load(Options{Path: "nope.toml", FS: fsys, SkipEnv: true})
		require.NoError(t, err)
		assert.Equal(t, Default().Editor, cfg.Editor)
		assert.Equal(t, Default().Logging, cfg.Logging)
		assert.Equal(t, Default().Plugins, cfg.Plugins)
		assert.Nil(t, cfg.Keymap.Files)
		assert.Empty(t, cfg.Keymap.Bindings)
	})
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.toml":  {Data: []byte("[editor\n")},
		"invalid.toml": {Data: []byte("[logging]\nlevel = \"loud\"\n[keymap.bindings]\n\"C-\" = \"x.y\"\n")},
	}

	_, err := Load(Options{Path: "broken.toml", FS: fsys, SkipEnv: true})
	var perr *loader.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "broken.toml", perr.Path)

	_, err = Load(Options{Path: "invalid.toml", FS: fsys, SkipEnv: true})
	require.ErrorIs(t, err, ErrValidationFailed)
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)

	_, err = Load(Options{Path: "inkwell.ini", FS: fsys, SkipEnv: true})
	assert.ErrorIs(t, err, loader.ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Editor.DisabledActions = []string{"bold"}
	cfg.Keymap.Bindings["C-k"] = ""
	cfg.Plugins.InstructionLimit = -1

	var verrs ValidationErrors
	require.ErrorAs(t, cfg.Validate(), &verrs)
	paths := make([]string, len(verrs))
	for i, v := range verrs {
		paths[i] = v.Path
	}
	assert.ElementsMatch(t, []string{"editor.disabledActions", "keymap.bindings", "plugins.instructionLimit"}, paths)
}

func TestKeymapsApplyUserBindings(t *testing.T) {
	cfg := Default()
	cfg.Keymap.Bindings["C-b"] = "format.bold"

	reg, err := cfg.Keymaps()
	require.NoError(t, err)

	lctx := keymap.NewLookupContext()
	lctx.Conditions = cfg.Features().Conditions()

	b := reg.Lookup(key.MustParse("C-b"), lctx)
	require.NotNil(t, b)
	assert.Equal(t, "format.bold", b.Action)

	b = reg.Lookup(key.MustParse("C-f"), lctx)
	require.NotNil(t, b)
	assert.Equal(t, "cursor.right", b.Action)
}

func TestKeymapsLoadFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "markdown.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
name: markdown
priority: 5
bindings:
  - keys: C-k
    action: pair.deleteForward
  - keys: C-b
    action: cursor.right
`), 0o644))

	cfg := Default()
	cfg.Keymap.Files = []string{file, filepath.Join(dir, "missing.toml")}
	cfg.Keymap.Bindings["C-b"] = "format.bold"

	reg, err := cfg.Keymaps()
	require.Error(t, err, "missing file is reported")
	require.NotNil(t, reg)

	lctx := keymap.NewLookupContext()
	lctx.Conditions = cfg.Features().Conditions()

	b := reg.Lookup(key.MustParse("C-k"), lctx)
	require.NotNil(t, b)
	assert.Equal(t, "pair.deleteForward", b.Action)

	b = reg.Lookup(key.MustParse("C-b"), lctx)
	require.NotNil(t, b)
	assert.Equal(t, "format.bold", b.Action, "user bindings outrank keymap files")
}

func TestManagerReloadOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nautoPair = true\n"), 0o644))

	bus := event.NewBus()
	reloaded := make(chan event.ConfigReloaded, 4)
	_, err := bus.SubscribeFunc(event.TopicConfigReloaded, func(_ context.Context, ev any) error {
		p, _ := event.Payload[event.ConfigReloaded](ev)
		reloaded <- p
		return nil
	})
	require.NoError(t, err)

	m := NewManager(Options{Path: path, SkipEnv: true}, WithBus(bus), WithDebounce(20*time.Millisecond))
	cfg, err := m.Load()
	require.NoError(t, err)
	assert.True(t, cfg.Editor.AutoPair)

	changed := make(chan *Config, 4)
	m.OnChange(func(c *Config) { changed <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Watch(ctx))
	defer m.Close()

	require.NoError(t, os.WriteFile(path, []byte("[editor]\nautoPair = false\n"), 0o644))

	select {
	case c := <-changed:
		assert.False(t, c.Editor.AutoPair)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload")
	}
	select {
	case p := <-reloaded:
		assert.NoError(t, p.Err)
		assert.Equal(t, path, p.Path)
	case <-time.After(time.Second):
		t.Fatal("config.reloaded not published")
	}
	assert.False(t, m.Current().Editor.AutoPair)
}

func TestManagerReloadKeepsConfigOnError(t *testing.T) {
	fsys := fstest.MapFS{"inkwell.toml": {Data: []byte("[logging]\nlevel = \"debug\"\n")}}
	m := NewManager(Options{Path: "inkwell.toml", FS: fsys, SkipEnv: true})
	_, err := m.Load()
	require.NoError(t, err)

	fsys["inkwell.toml"] = &fstest.MapFile{Data: []byte("[logging\n")}
	calls := 0
	m.OnChange(func(*Config) { calls++ })

	assert.Error(t, m.Reload(context.Background()))
	assert.Equal(t, "debug", m.Current().Logging.Level)
	assert.Zero(t, calls)
}

func TestManagerWatchWithoutPath(t *testing.T) {
	m := NewManager(Options{SkipEnv: true})
	assert.ErrorIs(t, m.Watch(context.Background()), ErrNoPath)
	assert.NoError(t, m.Close())
}
