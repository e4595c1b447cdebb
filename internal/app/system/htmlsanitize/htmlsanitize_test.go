package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/quorumhq/quorum/internal/app/system/htmlsanitize"
)

func TestRich_StripsScripts(t *testing.T) {
	in := `<p>hello</p><script>alert(1)</script>`
	out := htmlsanitize.Rich(in)
	if strings.Contains(out, "script") {
		t.Errorf("script survived: %q", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("paragraph lost: %q", out)
	}
}

func TestRich_KeepsLinks(t *testing.T) {
	out := htmlsanitize.Rich(`<a href="https://example.org">site</a>`)
	if !strings.Contains(out, "href") {
		t.Errorf("link lost: %q", out)
	}
}

func TestPlain_StripsEverything(t *testing.T) {
	out := htmlsanitize.Plain(`<b>bold</b> title`)
	if out != "bold title" {
		t.Errorf("Plain = %q, want %q", out, "bold title")
	}
}
