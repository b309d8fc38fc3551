package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/gridpaint.yaml", `
canvas:
  size: 16
  background: "#202020"
view:
  max_scale: 8
tools:
  palette:
    - black
    - "#ff00ff"
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/gridpaint.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := getByPath(config, "canvas.size"); v != int64(16) {
		t.Errorf("canvas.size = %v (%T), want int64 16", v, v)
	}
	if v, _ := getByPath(config, "canvas.background"); v != "#202020" {
		t.Errorf("canvas.background = %v", v)
	}
	if v, _ := getByPath(config, "view.max_scale"); v != int64(8) {
		t.Errorf("view.max_scale = %v", v)
	}
	palette, _ := getByPath(config, "tools.palette")
	if list, ok := palette.([]any); !ok || len(list) != 2 {
		t.Errorf("tools.palette = %v (%T)", palette, palette)
	}
}

func TestYAMLLoader_Missing(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/none.yml").Load()
	if err != nil || config != nil {
		t.Errorf("Load missing = %v, %v; want nil, nil", config, err)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	config, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("empty document = %v, want empty map", config)
	}
}

func TestYAMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "canvas: [1, 2\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Path != "/bad.yaml" {
		t.Errorf("Path = %q", pe.Path)
	}
}

func TestNormalizeNonStringKeys(t *testing.T) {
	in := map[string]any{
		"outer": map[any]any{1: "one", "two": map[any]any{true: 3}},
	}
	out := normalize(in)
	outer, ok := out["outer"].(map[string]any)
	if !ok {
		t.Fatalf("outer = %T", out["outer"])
	}
	if outer["1"] != "one" {
		t.Errorf("outer[1] = %v", outer["1"])
	}
	inner, ok := outer["two"].(map[string]any)
	if !ok || inner["true"] != int64(3) {
		t.Errorf("inner = %v", outer["two"])
	}
}
