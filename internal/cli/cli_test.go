package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScene = `doc Demo v1 {
  meta { title: "Demo" }
  paper A4 landscape margin 20mm gutter 10mm
  scene {
    flowable main at 0mm 20mm length 600mm height 20mm spacing 6mm {
      object slur at "${start}" 5mm width 120mm kind line
      object dot at 20mm 8mm kind circle radius 2mm
    }
  }
}
`

func writeFixtures(t *testing.T) (scene, data string) {
	t.Helper()
	dir := t.TempDir()
	scene = filepath.Join(dir, "demo.neo")
	data = filepath.Join(dir, "data.json")
	if err := os.WriteFile(scene, []byte(testScene), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(data, []byte(`{"start": "230mm"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	return scene, data
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	root := NewRootCommand(&logs)
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	scene, data := writeFixtures(t)
	dir := filepath.Dir(scene)
	pdf := filepath.Join(dir, "out.pdf")
	debug := filepath.Join(dir, "out.json")

	if _, err := execute(t, "render", scene, "--data", data, "-o", pdf, "--debug", debug, "-v"); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	raw, err := os.ReadFile(pdf)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
	js, err := os.ReadFile(debug)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(js), `"spans-lines"`) {
		t.Error("debug json should record the split slur")
	}
}

func TestRenderMissingBinding(t *testing.T) {
	scene, _ := writeFixtures(t)
	_, err := execute(t, "render", scene, "-o", filepath.Join(t.TempDir(), "x.pdf"))
	if err == nil || !strings.Contains(err.Error(), "start") {
		t.Fatalf("expected unresolved binding error, got %v", err)
	}
}

func TestTreeCommand(t *testing.T) {
	scene, data := writeFixtures(t)
	out, err := execute(t, "tree", scene, "--data", data)
	if err != nil {
		t.Fatalf("tree failed: %v", err)
	}
	for _, want := range []string{"#0 [root]", "  page0 [page]", "    main [frame]", "      slur [object]", "spans-lines x2", "fits-in-line x1"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
}

func TestMapCommand(t *testing.T) {
	scene, data := writeFixtures(t)
	out, err := execute(t, "map", scene, "main", "slur", "--data", data)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	if got := strings.TrimSpace(out); got != "(230mm, 5mm)" {
		t.Errorf("map = %q", got)
	}

	if _, err := execute(t, "map", scene, "nope", "root", "--data", data); err == nil {
		t.Error("expected error for unknown node")
	}
}

func TestConfigFlag(t *testing.T) {
	scene, data := writeFixtures(t)
	cfg := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(cfg, []byte("[paper]\nsize = \"B9\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "tree", scene, "--data", data, "--config", cfg); err == nil {
		t.Error("expected config error")
	}
}
