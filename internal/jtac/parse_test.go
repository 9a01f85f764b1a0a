package jtac

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitModels(t *testing.T) {
	tt := []struct {
		name   string
		family Family
		model  string
		want   []string
	}{
		{"single", EX, "EX4300", []string{"EX4300"}},
		{"slash", EX, "EX4300/EX4300-48", []string{"EX4300", "EX4300-48"}},
		{
			"linecard shared",
			MX, "MX960/MX480 with MPC7E",
			[]string{"MX960 with MPC7E", "MX480 with MPC7E"},
		},
		{"ptx chassis sku keeps slash", PTX, "PTX10008/PTX10016", []string{"PTX10008/PTX10016"}},
		{"comma variants", PTX, "PTX1000, PTX5000", []string{"PTX1000", "PTX5000"}},
		{"mx mic keeps slash", MX, "MX204 with MIC-3D/MS", []string{"MX204 with MIC-3D/MS"}},
		{"qfx heading skipped", QFX, "Asptra Release Considerations", nil},
		{"srx heading skipped", SRX, "Products for which support has ended", nil},
		{"srx linecard", SRX, "SRX5400/SRX5600/SRX5800 with SPC3", []string{
			"SRX5400 with SPC3", "SRX5600 with SPC3", "SRX5800 with SPC3",
		}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.family.splitModels(tc.model))
		})
	}
}

func TestParseReleases(t *testing.T) {
	tt := []struct {
		name    string
		release string
		want    []string
	}{
		{"single", "18.4R3", []string{"18.4R3"}},
		{"single latest unmarked", "Latest 21.4R3", []string{"21.4R3"}},
		{
			"multi latest tags every release",
			"Latest 21.4R3/20.4R3",
			[]string{"21.4R3 (latest)", "20.4R3 (latest)"},
		},
		{"multi without marker", "21.4R3/20.4R3", []string{"21.4R3", "20.4R3"}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseReleases(tc.release))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("empty is not an error", func(t *testing.T) {
		updated, err := parseDate("", false)
		require.NoError(t, err)
		assert.True(t, updated.IsZero())
	})

	t.Run("month name", func(t *testing.T) {
		updated, err := parseDate("March 3, 2023", false)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2023, time.March, 3, 0, 0, 0, 0, time.UTC), updated)
	})

	t.Run("nbsp and space runs", func(t *testing.T) {
		updated, err := parseDate("March"+nbsp+" 3,  2023", true)
		require.NoError(t, err)
		assert.Equal(t, 2023, updated.Year())
	})

	t.Run("garbage is a hard error", func(t *testing.T) {
		_, err := parseDate("not-a-date-xyz", false)
		require.Error(t, err)
	})
}

func TestExtract(t *testing.T) {
	rows := [][]string{
		{}, // header row, no td cells
		{"MX240/MX480", "Latest 21.4R3/20.4R3", "March 3, 2023"},
		{"MX10003", "See MX Series", "March 3, 2023"},
	}

	records, err := Extract(MX, rows)
	require.NoError(t, err)
	require.Len(t, records, 2)

	want := []string{"21.4R3 (latest)", "20.4R3 (latest)"}
	assert.Equal(t, "MX240", records[0].Model)
	assert.Equal(t, "MX480", records[1].Model)
	for _, r := range records {
		assert.Equal(t, want, r.Recommended)
		assert.Equal(t, time.Date(2023, time.March, 3, 0, 0, 0, 0, time.UTC), r.Updated)
	}
}

func TestExtractSharedTable(t *testing.T) {
	// MX and PTX share one table; each family only sees its own rows.
	rows := [][]string{
		{"MX204", "21.4R3", "March 3, 2023"},
		{"PTX1000, PTX5000", "22.2R3", "April 4, 2023"},
	}

	mx, err := Extract(MX, rows)
	require.NoError(t, err)
	require.Len(t, mx, 1)
	assert.Equal(t, "MX204", mx[0].Model)

	ptx, err := Extract(PTX, rows)
	require.NoError(t, err)
	require.Len(t, ptx, 2)
	assert.Equal(t, "PTX1000", ptx[0].Model)
	assert.Equal(t, "PTX5000", ptx[1].Model)
}

func TestExtractEmptyDate(t *testing.T) {
	records, err := Extract(MX, [][]string{{"MX204", "21.4R3", ""}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Updated.IsZero())
}

func TestExtractBadDateFails(t *testing.T) {
	_, err := Extract(EX, [][]string{{"EX4300", "21.4R3", "pending review"}})
	require.Error(t, err)
}

func TestExtractMalformedRow(t *testing.T) {
	// NFX keeps its date in cell 4; a row without one is a format change,
	// not something to skip quietly.
	_, err := Extract(NFX, [][]string{{"NFX250", "21.4R3", "March 3, 2023"}})
	require.ErrorIs(t, err, ErrMalformedRow)
}

func TestExtractPreservesDuplicatesAndOrder(t *testing.T) {
	rows := [][]string{
		{"EX4300", "20.4R3", "March 3, 2023"},
		{"EX4300", "21.4R3", "April 4, 2023"},
	}
	records, err := Extract(EX, rows)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"20.4R3"}, records[0].Recommended)
	assert.Equal(t, []string{"21.4R3"}, records[1].Recommended)
}
