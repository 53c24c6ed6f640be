package composer

import (
	"strings"
	"testing"
)

func TestComposeDeterministic(t *testing.T) {
	tests := []struct {
		name    string
		buffers SourceBuffers
	}{
		{
			name:    "all empty",
			buffers: SourceBuffers{},
		},
		{
			name: "typical project",
			buffers: SourceBuffers{
				Markup: "<h1>Hello</h1>",
				Style:  "h1 { color: red; }",
				Script: "console.log('hi');",
				Title:  "Demo",
			},
		},
		{
			name: "markup only",
			buffers: SourceBuffers{Markup: "<p>solo</p>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Compose(tt.buffers)
			second := Compose(tt.buffers)
			if first != second {
				t.Errorf("Compose is not deterministic:\nfirst  = %q\nsecond = %q", first, second)
			}
		})
	}
}

func TestComposeRegionOrder(t *testing.T) {
	doc := Compose(SourceBuffers{
		Markup: "<div>body here</div>",
		Style:  ".x { margin: 0 }",
		Script: "let a = 1;",
	})

	styleAt := strings.Index(doc, ".x { margin: 0 }")
	markupAt := strings.Index(doc, "<div>body here</div>")
	scriptAt := strings.Index(doc, "let a = 1;")

	if styleAt < 0 || markupAt < 0 || scriptAt < 0 {
		t.Fatalf("composite is missing a region: %q", doc)
	}
	if !(styleAt < markupAt && markupAt < scriptAt) {
		t.Errorf("regions out of order: style=%d markup=%d script=%d", styleAt, markupAt, scriptAt)
	}
	if !strings.Contains(doc, "<style>.x { margin: 0 }</style>") {
		t.Errorf("style not embedded verbatim in style block")
	}
	if !strings.Contains(doc, "<script>let a = 1;</script>") {
		t.Errorf("script not embedded verbatim in script block")
	}
}

func TestComposeShellBytes(t *testing.T) {
	want := "\n      <html>\n        <head>\n          <style>b{}</style>\n" +
		"        </head>\n        <body>\n          <b>m</b>\n" +
		"        <script>1+1</script>\n        </body>\n      </html>\n    "

	got := Compose(SourceBuffers{Markup: "<b>m</b>", Style: "b{}", Script: "1+1"})
	if got != want {
		t.Errorf("composite shell drifted:\ngot  = %q\nwant = %q", got, want)
	}
}

func TestExtractRegionsRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		buffers SourceBuffers
	}{
		{"all empty", SourceBuffers{}},
		{"plain", SourceBuffers{Markup: "<b>m</b>", Style: "b{}", Script: "1+1"}},
		{"multiline", SourceBuffers{
			Markup: "<ul>\n<li>one</li>\n</ul>",
			Style:  "ul {\n  padding: 0;\n}",
			Script: "for (;;) {\n  break;\n}",
		}},
		{"markup with angle brackets", SourceBuffers{Markup: "<p>a < b > c</p>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Compose(tt.buffers)
			regions, ok := ExtractRegions(doc)
			if !ok {
				t.Fatalf("ExtractRegions failed on composed document %q", doc)
			}
			if regions.Style != tt.buffers.Style {
				t.Errorf("Style = %q, want %q", regions.Style, tt.buffers.Style)
			}
			if regions.Markup != tt.buffers.Markup {
				t.Errorf("Markup = %q, want %q", regions.Markup, tt.buffers.Markup)
			}
			if regions.Script != tt.buffers.Script {
				t.Errorf("Script = %q, want %q", regions.Script, tt.buffers.Script)
			}
		})
	}
}

func TestExtractRegionsRejectsForeignDocument(t *testing.T) {
	if _, ok := ExtractRegions("<html><body>not ours</body></html>"); ok {
		t.Error("expected extraction to fail on a document not produced by Compose")
	}
}

func TestEmptyProjectComposite(t *testing.T) {
	doc := Compose(SourceBuffers{})

	regions, ok := ExtractRegions(doc)
	if !ok {
		t.Fatal("empty composite did not extract")
	}
	if regions.Style != "" || regions.Markup != "" || regions.Script != "" {
		t.Errorf("empty buffers produced non-empty regions: %+v", regions)
	}
	if !strings.Contains(doc, "<style></style>") {
		t.Errorf("empty style region missing from %q", doc)
	}
	if !strings.Contains(doc, "<script></script>") {
		t.Errorf("empty script region missing from %q", doc)
	}
}

func TestNewSourceBuffersDefaults(t *testing.T) {
	b := NewSourceBuffers()
	if b.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", b.Title, DefaultTitle)
	}
	if b.Markup != "" || b.Style != "" || b.Script != "" {
		t.Errorf("new buffers are not empty: %+v", b)
	}
}
