// Package jtac extracts recommended Junos software releases from the JTAC
// "Suggested Releases" support article. The page carries one semi-structured
// HTML table per product line; the extractor turns each table into a flat
// list of per-model records.
package jtac

import "time"

// Record is one model's recommendation from a family table.
// Recommended holds a single release unless the source listed several
// slash-separated releases. Updated is zero when the source cell was blank.
type Record struct {
	Model       string
	Recommended []string
	Updated     time.Time
}

// Release returns the recommendation as the page presents it: the single
// release, or the slash-joined list for multi-release rows.
func (r Record) Release() string {
	if len(r.Recommended) == 1 {
		return r.Recommended[0]
	}
	out := ""
	for i, rel := range r.Recommended {
		if i > 0 {
			out += " / "
		}
		out += rel
	}
	return out
}
