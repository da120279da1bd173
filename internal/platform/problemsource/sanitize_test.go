package problemsource

import (
	"strings"
	"testing"
)

func TestSanitizeHTML(t *testing.T) {
	cases := map[string]struct {
		in      string
		absent  []string
		present []string
	}{
		"script block": {
			in:      `<p>a</p><SCRIPT type="x">alert(1)</script><p>b</p>`,
			absent:  []string{"alert", "script"},
			present: []string{"<p>a</p>", "<p>b</p>"},
		},
		"event handlers": {
			in:      `<img src="x.png" onerror="steal()" onload='x()' onclick=go()>`,
			absent:  []string{"steal", "x()", "go()", "onerror", "onload", "onclick"},
			present: []string{`src="x.png"`},
		},
		"javascript uri": {
			in:      `<a href="JavaScript:alert(1)">x</a>`,
			absent:  []string{"javascript:", "JavaScript:"},
			present: []string{"alert(1)"},
		},
		"data text uri": {
			in:      `<iframe src="data:text/html;base64,AAAA"></iframe>`,
			absent:  []string{"data:text/html"},
			present: []string{";base64,AAAA"},
		},
		"prose that reads like a handler": {
			in:      `<p class="legend">If the count of ones = 3 then print YES; mention = x, onset=2</p>`,
			present: []string{`<p class="legend">If the count of ones = 3 then print YES; mention = x, onset=2</p>`},
		},
		"handler next to prose": {
			in:      `<span onmouseover="x()">ones = 3</span>`,
			absent:  []string{"onmouseover", "x()"},
			present: []string{"<span>ones = 3</span>"},
		},
		"plain prose untouched": {
			in:      `<p>Given an array, count one-based indices.</p>`,
			present: []string{`<p>Given an array, count one-based indices.</p>`},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := SanitizeHTML(tc.in)
			for _, s := range tc.absent {
				if strings.Contains(got, s) {
					t.Fatalf("expected %q removed from %q", s, got)
				}
			}
			for _, s := range tc.present {
				if !strings.Contains(got, s) {
					t.Fatalf("expected %q kept in %q", s, got)
				}
			}
		})
	}
}

func TestExtractStatement(t *testing.T) {
	page := `<html><div class="problem-statement"><div class="header">A. Title</div>` +
		`<p onclick="x()">Body</p></div> <div class="problem-statement">second</div></html>`
	got := ExtractStatement(page)
	if !strings.Contains(got, "A. Title") {
		t.Fatalf("expected header in %q", got)
	}
	if strings.Contains(got, "onclick") {
		t.Fatalf("expected sanitized statement, got %q", got)
	}

	if got := ExtractStatement(`<html><body>nothing here</body></html>`); got != "" {
		t.Fatalf("expected empty statement, got %q", got)
	}
}
