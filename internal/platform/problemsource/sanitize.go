package problemsource

import "regexp"

var (
	scriptBlock    = regexp.MustCompile(`(?is)<script\b.*?</script\s*>`)
	htmlTag        = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
	eventAttribute = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	scriptURI      = regexp.MustCompile(`(?i)javascript:`)
	dataTextURI    = regexp.MustCompile(`(?i)data:text/[a-z]+`)

	statementPair  = regexp.MustCompile(`(?is)<div class="problem-statement">(.*?)</div>\s*<div class="problem-statement"`)
	statementFirst = regexp.MustCompile(`(?is)<div class="problem-statement">(.*?)</div>`)
)

// SanitizeHTML strips the obvious script injection vectors from third-party
// HTML: script blocks, inline event handlers, javascript: and data:text/* URIs.
// It is a filter, not a full HTML sanitizer.
func SanitizeHTML(html string) string {
	html = scriptBlock.ReplaceAllString(html, "")
	// Event handlers only count inside a start tag; statement text like
	// "ones = 3" is left alone.
	html = htmlTag.ReplaceAllStringFunc(html, func(tag string) string {
		return eventAttribute.ReplaceAllString(tag, "")
	})
	html = scriptURI.ReplaceAllString(html, "")
	return dataTextURI.ReplaceAllString(html, "")
}

// ExtractStatement pulls the sanitized problem-statement fragment out of a
// Codeforces problem page, or "" when none is found.
func ExtractStatement(page string) string {
	if m := statementPair.FindStringSubmatch(page); m != nil {
		return SanitizeHTML(m[1])
	}
	if m := statementFirst.FindStringSubmatch(page); m != nil {
		return SanitizeHTML(m[1])
	}
	return ""
}
