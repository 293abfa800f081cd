package dsl_test

import (
	"strings"
	"testing"

	"github.com/Xavman42/neoscore/dsl"
)

const sampleDSL = `
doc Score v1 {
  meta {
    title: "Slur study"
    keywords: [
      "engraving"
      "flowable"
    ]
  }

  paper A4 landscape margin 15mm gutter 10mm

  scene {
    page 0 {
      object title at 10mm -5mm kind rect size 40mm 8mm
    }

    // one long line broken across the page
    flowable main at 0mm 20mm length 600mm height 20mm spacing 6mm {
      object slur at 230mm 5mm width "${w}" kind line color #0F62FE; object dot at 5mm 5mm kind circle radius 2mm
    }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Score" {
		t.Fatalf("expected document name Score, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	for i, want := range []string{"meta", "paper", "scene"} {
		if got := doc.Sections[i].Kind(); got != want {
			t.Fatalf("section %d: expected %s, got %s", i, want, got)
		}
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "Slur study" {
		t.Fatalf("expected title 'Slur study', got %s", got)
	}
	keywords := meta.Block.Statements[1].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected two keywords, got %+v", keywords)
	}

	paper := doc.Sections[1].Paper
	if paper.Size != "A4" {
		t.Fatalf("expected A4 paper, got %s", paper.Size)
	}
	var params []string
	for _, p := range paper.Params {
		params = append(params, p.Value)
	}
	if got := strings.Join(params, " "); got != "landscape margin 15mm gutter 10mm" {
		t.Fatalf("unexpected paper params: %q", got)
	}

	scene := doc.Sections[2].Scene
	if len(scene.Block.Statements) != 2 {
		t.Fatalf("expected page and flowable, got %d statements", len(scene.Block.Statements))
	}

	page := scene.Block.Statements[0].Command
	if page == nil || page.Name != "page" || page.Block == nil {
		t.Fatalf("expected page command with block, got %+v", scene.Block.Statements[0])
	}
	obj := page.Block.Statements[0].Command
	if obj.Name != "object" || obj.Args[0].Value != "title" {
		t.Fatalf("expected object title, got %+v", obj)
	}
	if obj.Args[3].Value != "-5mm" || obj.Args[3].Type != "Number" {
		t.Fatalf("expected negative number argument, got %+v", obj.Args[3])
	}

	flow := scene.Block.Statements[1].Command
	if flow.Name != "flowable" || flow.Block == nil {
		t.Fatalf("expected flowable block, got %+v", flow)
	}
	if len(flow.Block.Statements) != 2 {
		t.Fatalf("expected two objects split by ';', got %d", len(flow.Block.Statements))
	}
	slur := flow.Block.Statements[0].Command
	var width, color *dsl.Lexeme
	for i, a := range slur.Args {
		switch a.Value {
		case "width":
			width = slur.Args[i+1]
		case "color":
			color = slur.Args[i+1]
		}
	}
	if width == nil || width.Type != "String" || width.Value != "${w}" {
		t.Fatalf("expected unquoted binding string, got %+v", width)
	}
	if width.Raw != `"${w}"` {
		t.Fatalf("expected raw string to keep quotes, got %s", width.Raw)
	}
	if color == nil || color.Type != "Color" {
		t.Fatalf("expected color token, got %+v", color)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := dsl.ParseString(`doc X v1 { styles { } }`)
	if err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestParseFileReportsFilename(t *testing.T) {
	_, err := dsl.ParseFile("broken.neo", strings.NewReader("doc X v1 {\n  scene {\n"))
	if err == nil {
		t.Fatalf("expected error for unterminated scene")
	}
	if !strings.Contains(err.Error(), "broken.neo") {
		t.Fatalf("expected filename in error, got %v", err)
	}
}
