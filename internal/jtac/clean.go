package jtac

import "strings"

// nbsp is the non-breaking space the page uses as cell padding.
const nbsp = " "

// Footnote markers and descriptive parentheticals that appear in model and
// release cells. Removed verbatim after the whitespace passes.
var annotations = []string{
	" (See Note 1)",
	" (See Note 2)",
	" (See Note 3)",
	" (See Note 4)",
	" (see notes)",
	" (*1)",
	" (*2)",
	" (*3)",
	" (Except the ones listed below)",
	" (recommended)",
	" (legacy)",
	" (see note)",
}

// Cleanup normalises a raw table cell. The passes are order-sensitive:
// whitespace first, then slash handling (tabs have already become slashes),
// then brackets and annotations. Running it on its own output is a no-op.
func Cleanup(s string) string {
	cleaned := strings.ReplaceAll(s, nbsp, " ")

	// Tabs separate what are really alternate models; a run of tabs
	// collapses to a single slash once the duplicate-slash pass runs
	cleaned = strings.ReplaceAll(cleaned, "\t", "/")

	for strings.Contains(cleaned, "  ") {
		cleaned = strings.ReplaceAll(cleaned, "  ", " ")
	}

	cleaned = strings.ReplaceAll(cleaned, " / ", "/")
	cleaned = strings.ReplaceAll(cleaned, " /", "/")
	cleaned = strings.ReplaceAll(cleaned, "/ ", "/")
	for strings.Contains(cleaned, "//") {
		cleaned = strings.ReplaceAll(cleaned, "//", "/")
	}

	cleaned = strings.ReplaceAll(cleaned, " )", ")")
	cleaned = strings.ReplaceAll(cleaned, "( ", "(")

	cleaned = strings.Trim(cleaned, ".")

	for _, note := range annotations {
		cleaned = strings.ReplaceAll(cleaned, note, "")
	}

	return cleaned
}
