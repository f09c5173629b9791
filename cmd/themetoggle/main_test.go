package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/themetoggle/internal/applicator"
	"github.com/jmylchreest/themetoggle/internal/prefs"
	"github.com/jmylchreest/themetoggle/internal/theme"
)

func writeTestConfig(t *testing.T, dir string) string {
	t.Helper()
	configPath := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(configPath, []byte("[system]\ndetector = \"none\"\n"), 0644))
	}
	return configPath
}

// execute runs the CLI against a private data dir with detection disabled.
func execute(t *testing.T, dir string, args ...string) string {
	t.Helper()
	configPath := writeTestConfig(t, dir)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", configPath, "--data-dir", dir, "--origin", "test"}, args...))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCLI_SetGetToggle(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "dark\n", execute(t, dir, "get"))
	assert.Equal(t, "light\n", execute(t, dir, "set", "LIGHT"))
	assert.Equal(t, "light\n", execute(t, dir, "get"))
	assert.Equal(t, "dark\n", execute(t, dir, "toggle"))

	data, err := os.ReadFile(filepath.Join(dir, "test.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme": "dark"`)
}

func TestCLI_Follow(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, "off\n", execute(t, dir, "follow"))
	assert.Equal(t, "follow system: on, theme: dark\n", execute(t, dir, "follow", "on"))
	assert.Equal(t, "on\n", execute(t, dir, "follow"))
}

func TestCLI_ExportImport(t *testing.T) {
	dir := t.TempDir()
	execute(t, dir, "set", "light")

	path := filepath.Join(dir, "theme.yaml")
	execute(t, dir, "export", "--format", "yaml", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "theme: light")

	execute(t, dir, "set", "dark")
	assert.Equal(t, "theme: light, follow system: off\n", execute(t, dir, "import", path))
}

func TestCLI_ApplyWithControls(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "page.html")
	out := filepath.Join(dir, "out.html")
	require.NoError(t, os.WriteFile(in, []byte(`<html><body>
<header class="main-header"></header>
<section data-settings-section="appearance"></section>
</body></html>`), 0644))

	execute(t, dir, "apply", in, "-o", out, "--controls", "--theme", "light")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, `<html class="light-theme">`)
	assert.Contains(t, html, `data-theme="light"`)
	assert.Contains(t, html, "theme-toggle-btn")
	assert.Equal(t, 2, strings.Count(html, "theme-preview-card"))
}

func TestCLI_CSS(t *testing.T) {
	out := execute(t, t.TempDir(), "css")
	assert.Contains(t, out, ":root.dark-theme")
	assert.Contains(t, out, ":root.light-theme")
}

func TestSettingsFormat(t *testing.T) {
	assert.Equal(t, applicator.FormatYAML, settingsFormat("", "a.YML"))
	assert.Equal(t, applicator.FormatYAML, settingsFormat("", "a.yaml"))
	assert.Equal(t, applicator.FormatJSON, settingsFormat("", "a.json"))
	assert.Equal(t, applicator.FormatJSON, settingsFormat("", "-"))
	assert.Equal(t, applicator.FormatYAML, settingsFormat("YAML", "a.json"))
}

func TestCLI_StatusJSON(t *testing.T) {
	dir := t.TempDir()
	execute(t, dir, "set", "light")
	t.Cleanup(func() { statusOpts.json = false })

	var st Status
	require.NoError(t, json.Unmarshal([]byte(execute(t, dir, "status", "--json")), &st))
	assert.Equal(t, theme.Light, st.Theme)
	assert.Equal(t, "light-theme", st.Class)
	assert.False(t, st.FollowSystem)
	assert.Equal(t, "none", st.Detector)
	assert.Empty(t, st.SystemTheme)
	assert.Equal(t, filepath.Join(dir, "test.json"), st.Storage)
	assert.NotZero(t, st.Modified)
}

func TestCLI_Status(t *testing.T) {
	dir := t.TempDir()
	execute(t, dir, "follow", "on")

	out := execute(t, dir, "status")
	assert.Contains(t, out, "Theme:         dark (dark-theme)")
	assert.Contains(t, out, "Follow system: on")
	assert.Contains(t, out, "System theme:  no preference (via none)")
	assert.Contains(t, out, "Storage:       "+filepath.Join(dir, "test.json"))
	assert.Contains(t, out, "Modified:")
}

// syncBuffer is a bytes.Buffer safe to read while a command writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCLI_WatchReportsOtherProcesses(t *testing.T) {
	dir := t.TempDir()
	configPath := writeTestConfig(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t.Cleanup(func() { rootCmd.SetContext(context.Background()) })

	var out syncBuffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--config", configPath, "--data-dir", dir, "--origin", "test", "watch"})
	done := make(chan error, 1)
	go func() { done <- rootCmd.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool { return strings.Contains(out.String(), "source=init") },
		5*time.Second, 20*time.Millisecond, out.String())

	// Another process on the same origin.
	require.NoError(t, prefs.NewFileKV(filepath.Join(dir, "test.json")).Set(prefs.KeyTheme, "light"))
	require.Eventually(t, func() bool { return strings.Contains(out.String(), "theme=light source=storage") },
		5*time.Second, 20*time.Millisecond, out.String())

	time.Sleep(300 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, out.String())
	assert.Contains(t, lines[0], "theme=dark source=init")
	assert.Contains(t, lines[1], "theme=light source=storage")
}
