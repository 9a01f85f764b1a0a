package jtac

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrMalformedRow reports a row with fewer cells than the family's layout
// requires. The tables are machine-generated, so a short data row means the
// page format changed and the fix belongs here, not in skipping the row.
var ErrMalformedRow = errors.New("row has fewer cells than expected")

// Extract turns one family's table rows into records, preserving row order.
// Multi-model rows expand into one record per model sharing the row's
// release and date. Nothing is deduplicated or sorted.
func Extract(f Family, rows [][]string) ([]Record, error) {
	var records []Record

	for i, cells := range rows {
		// Header rows hold th elements, which arrive as no cells
		if len(cells) == 0 {
			continue
		}

		// Shared-table rows that belong to the other family
		if f.skipRowContains != "" && strings.Contains(cells[0], f.skipRowContains) {
			continue
		}

		model := Cleanup(cells[0])
		models := f.splitModels(model)
		if models == nil {
			continue
		}

		if len(cells) <= f.DateCol || len(cells) < 2 {
			return nil, fmt.Errorf("%s row %d (%q): %d cells, need index %d: %w",
				f.Tag, i, model, len(cells), f.DateCol, ErrMalformedRow)
		}

		release := Cleanup(cells[1])
		if f.crossRefContains != "" && strings.Contains(release, f.crossRefContains) {
			continue
		}
		recommended := parseReleases(release)

		updated, err := parseDate(cells[f.DateCol], f.collapseDateSpaces)
		if err != nil {
			return nil, fmt.Errorf("%s row %d (%q): %w", f.Tag, i, model, err)
		}

		for _, m := range models {
			records = append(records, Record{
				Model:       m,
				Recommended: recommended,
				Updated:     updated,
			})
		}
	}

	return records, nil
}

// ExtractAll runs Extract for every listed family over its table, keyed by
// family tag.
func ExtractAll(families []Family, tables map[string][][]string) (map[string][]Record, error) {
	out := make(map[string][]Record, len(families))
	for _, f := range families {
		records, err := Extract(f, tables[f.Summary])
		if err != nil {
			return nil, err
		}
		out[f.Tag] = records
	}
	return out, nil
}

// splitModels decides whether a cleaned model cell names one model or
// several, honouring the family's known table irregularities. A nil result
// means the row is a mis-parsed heading and must be skipped.
func (f Family) splitModels(model string) []string {
	if f.sentinelExact != "" && model == f.sentinelExact {
		return nil
	}
	if f.sentinelContains != "" && strings.Contains(model, f.sentinelContains) {
		return nil
	}

	switch {
	case strings.Contains(model, "/") &&
		(f.noSplitContains == "" || !strings.Contains(model, f.noSplitContains)):
		return splitSlashed(model)
	case f.commaSplit && strings.Contains(model, ", "):
		return strings.Split(model, ", ")
	default:
		return []string{model}
	}
}

// splitSlashed splits slash-separated models, re-appending a shared
// linecard qualifier ("... with MPC7E") to each one. A fragment that already
// carries its own with-clause keeps it rather than gaining a second copy.
func splitSlashed(model string) []string {
	linecard := ""
	if i := strings.Index(model, "with"); i >= 0 {
		linecard = model[i+len("with"):]
	}

	parts := strings.Split(model, "/")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		switch {
		case linecard == "":
			out = append(out, part)
		case strings.Contains(part, "with"):
			out = append(out, part)
		default:
			out = append(out, part+" with"+linecard)
		}
	}
	return out
}

// parseReleases interprets a cleaned release cell. A "latest" marker is
// detected case-insensitively and the literal "Latest " prefix stripped.
// When a latest-marked row lists several slash-separated releases, every one
// of them is tagged "(latest)" - that matches the page's historic labelling
// even though only one of them is usually the literal latest release.
func parseReleases(release string) []string {
	latest := strings.Contains(strings.ToLower(release), "latest")
	release = strings.ReplaceAll(release, "Latest ", "")

	if !strings.Contains(release, "/") {
		return []string{release}
	}

	parts := strings.Split(release, "/")
	if latest {
		for i, part := range parts {
			parts[i] = part + " (latest)"
		}
	}
	return parts
}

// parseDate reads a free-text date cell. Blank cells are not an error; any
// other text that fails to parse is, so a vendor format change surfaces
// immediately instead of producing silently empty dates.
func parseDate(cell string, collapseSpaces bool) (time.Time, error) {
	date := strings.ReplaceAll(cell, nbsp, " ")
	if collapseSpaces {
		for strings.Contains(date, "  ") {
			date = strings.ReplaceAll(date, "  ", " ")
		}
	}
	date = strings.TrimSpace(date)

	if date == "" {
		return time.Time{}, nil
	}

	updated, err := dateparse.ParseAny(date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", cell, err)
	}
	return updated, nil
}
