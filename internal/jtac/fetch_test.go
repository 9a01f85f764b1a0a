package jtac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `<html><body>
<table summary="EX Series Ethernet Switches">
  <tr><th>Model</th><th>Release</th><th>Updated</th></tr>
  <tr><td>EX4300 / EX4300-48</td><td>Latest 21.4R3/20.4R3</td><td>March 3, 2023</td></tr>
</table>
<table summary="ACX Series Service Routers">
  <tr><td><b>ACX710</b></td><td>21.4R3</td><td>March&#160;3, 2023</td></tr>
</table>
</body></html>`

func testFetcher(url string) *Fetcher {
	f := NewFetcher(url)
	f.Interval = 10 * time.Millisecond
	f.Attempts = 3
	return f
}

func TestTables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	tables, err := testFetcher(srv.URL).Tables(context.Background(), []Family{EX, ACX})
	require.NoError(t, err)

	ex := tables[EX.Summary]
	require.Len(t, ex, 2)
	assert.Empty(t, ex[0], "header row has no td cells")
	assert.Equal(t, []string{"EX4300 / EX4300-48", "Latest 21.4R3/20.4R3", "March 3, 2023"}, ex[1])

	acx := tables[ACX.Summary]
	require.Len(t, acx, 1)
	// Nested markup flattens to text; the entity stays a real nbsp for Cleanup
	assert.Equal(t, "ACX710", acx[0][0])
	assert.Equal(t, "March"+nbsp+"3, 2023", acx[0][2])
}

func TestTablesWaitsForRender(t *testing.T) {
	// First response misses the canary table, as the page does before its
	// script has run.
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.Write([]byte("<html><body>loading</body></html>"))
			return
		}
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Tables(context.Background(), []Family{EX, ACX})
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestTablesGivesUp(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("<html><body>loading</body></html>"))
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Tables(context.Background(), []Family{EX})
	require.ErrorIs(t, err, ErrTableNotFound)
	assert.Equal(t, 3, hits)
}

func TestTablesMissingFamily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(testPage))
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Tables(context.Background(), []Family{EX, SRX})
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestTablesNoFamilies(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Tables(context.Background(), nil)
	require.Error(t, err)
	assert.Zero(t, hits, "nothing to look for, nothing fetched")
}

func TestTablesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testFetcher(srv.URL).Tables(context.Background(), []Family{EX})
	require.Error(t, err)
}
