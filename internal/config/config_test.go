package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsZeroValue(t *testing.T) {
	assert.Equal(t, Config{}, Default())
}

func TestParseRender(t *testing.T) {
	tests := []struct {
		in   string
		want Render
	}{
		{"auto", RenderAuto},
		{"full", RenderFull},
		{"Full", RenderFull},
		{"onlyBody", RenderOnlyBody},
		{"only-body", RenderOnlyBody},
		{"only_body", RenderOnlyBody},
		{"", RenderAuto},
		{"garbage", RenderAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRender(tt.in), "input %q", tt.in)
	}
}

func TestParseStylesFallBackToFull(t *testing.T) {
	assert.Equal(t, IDStyleShort, ParseIDStyle("short"))
	assert.Equal(t, IDStyleShortNoDiv, ParseIDStyle("shortNoDiv"))
	assert.Equal(t, IDStyleShortNoDiv, ParseIDStyle("short-no-div"))
	assert.Equal(t, IDStyleFull, ParseIDStyle("tiny"))

	assert.Equal(t, ClassStyleShort, ParseClassStyle("SHORT"))
	assert.Equal(t, ClassStyleShortNoDiv, ParseClassStyle("short_no_div"))
	assert.Equal(t, ClassStyleFull, ParseClassStyle("%%%"))
}

func TestStringRoundTrip(t *testing.T) {
	for _, r := range []Render{RenderAuto, RenderFull, RenderOnlyBody} {
		assert.Equal(t, r, ParseRender(r.String()))
	}
	for _, s := range []IDStyle{IDStyleFull, IDStyleShort, IDStyleShortNoDiv} {
		assert.Equal(t, s, ParseIDStyle(s.String()))
	}
	for _, s := range []ClassStyle{ClassStyleFull, ClassStyleShort, ClassStyleShortNoDiv} {
		assert.Equal(t, s, ParseClassStyle(s.String()))
	}
}

func TestJSONSettingsAreLenient(t *testing.T) {
	var cfg Config
	err := json.Unmarshal([]byte(`{"render":"onlyBody","id_style":"bogus","class_style":"shortNoDiv"}`), &cfg)
	require.NoError(t, err)

	assert.Equal(t, RenderOnlyBody, cfg.Render)
	assert.Equal(t, IDStyleFull, cfg.IDStyle)
	assert.Equal(t, ClassStyleShortNoDiv, cfg.ClassStyle)
}

func TestLoadFileMissingReturnsDefault(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "render: full\nid_style: short\nclass_style: not-a-style\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Render: RenderFull, IDStyle: IDStyleShort, ClassStyle: ClassStyleFull}, cfg)
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render: [unclosed\n"), 0644))

	cfg, err := LoadFile(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.yaml")
	want := Config{Render: RenderOnlyBody, IDStyle: IDStyleShortNoDiv, ClassStyle: ClassStyleShort}

	require.NoError(t, WriteFile(path, want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "render: onlyBody")
	assert.Contains(t, string(data), "id_style: shortNoDiv")

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
