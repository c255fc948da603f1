package markdown

import (
	"strings"
	"testing"
)

func TestRenderer_ToHTML(t *testing.T) {
	r := NewRenderer()
	out, err := r.ToHTML("# Gitega\n\nLe **hub** ouvre.\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>hub</strong>") {
		t.Fatalf("markdown not rendered: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("script survived sanitising: %q", out)
	}
}

func TestRenderer_PlainText(t *testing.T) {
	r := NewRenderer()
	got := r.PlainText("<p>Bujumbura   <b>port</b></p>\n<img src=x onerror=alert(1)>")
	if got != "Bujumbura port" {
		t.Fatalf("got %q", got)
	}

	got = r.PlainText("L&#39;économie &amp; l'emploi <i>au</i> Burundi")
	if got != "L'économie & l'emploi au Burundi" {
		t.Fatalf("entities not decoded: %q", got)
	}
}
