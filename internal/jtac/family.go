package jtac

// Family describes one product line's table on the JTAC page and the
// irregularities of that table. The MX and PTX lines share a single table
// (carried under the legacy "J Series" summary), so each skips the rows
// that mention the other.
type Family struct {
	Tag     string // lowercase family name, keys the output
	Summary string // the table's summary attribute on the page
	DateCol int    // cell index of the last-updated column

	// skipRowContains drops rows whose raw model cell mentions the other
	// family in a shared table.
	skipRowContains string

	// noSplitContains marks product codes that legitimately contain a
	// slash and must not be split into separate models.
	noSplitContains string

	// commaSplit enables the ", " separator some tables use instead of a
	// slash between model variants.
	commaSplit bool

	// sentinelExact and sentinelContains identify mis-parsed section
	// headings that must not become records.
	sentinelExact    string
	sentinelContains string

	// crossRefContains marks release cells that point at another family's
	// table instead of holding data.
	crossRefContains string

	// collapseDateSpaces collapses interior whitespace runs in the date
	// cell before parsing.
	collapseDateSpaces bool
}

var (
	EX  = Family{Tag: "ex", Summary: "EX Series Ethernet Switches", DateCol: 2}
	ACX = Family{Tag: "acx", Summary: "ACX Series Service Routers", DateCol: 2}
	PTX = Family{
		Tag:             "ptx",
		Summary:         "J Series Service Routers",
		DateCol:         2,
		skipRowContains: "MX",
		noSplitContains: "PTX10008",
		commaSplit:      true,
	}
	MX = Family{
		Tag:              "mx",
		Summary:          "J Series Service Routers",
		DateCol:          2,
		skipRowContains:  "PTX",
		noSplitContains:  "MIC",
		commaSplit:       true,
		crossRefContains: "See MX Series",
	}
	NFX = Family{Tag: "nfx", Summary: "NFX Series Network Services Platform", DateCol: 4}
	QFX = Family{
		Tag:           "qfx",
		Summary:       "QFX Series Service Routers",
		DateCol:       2,
		sentinelExact: "Asptra Release Considerations",
		// The QFX date cells carry extra interior whitespace
		collapseDateSpaces: true,
	}
	SRX = Family{
		Tag:              "srx",
		Summary:          "SRX Series Services Gateways",
		DateCol:          3,
		sentinelContains: "Products for which",
	}
)

// Families lists every product line in page order.
var Families = []Family{EX, ACX, PTX, MX, NFX, QFX, SRX}
