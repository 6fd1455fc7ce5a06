package almanac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientLeaguesAndSeasons(t *testing.T) {
	var gotUA atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA.Store(r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/":
			w.Write([]byte(yearMenuHTML))
		case "/yearly/yr1901a.shtml":
			w.Write([]byte(seasonPageHTML))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL, UserAgent: "test-agent"})

	leagues, err := c.Leagues(context.Background())
	require.NoError(t, err)
	require.Contains(t, leagues, "The History of the American League From 1901 to 2025")
	assert.Equal(t, "test-agent", gotUA.Load())

	// Relative menu hrefs resolve against the base URL.
	al := leagues["The History of the American League From 1901 to 2025"]
	tables, err := c.SeasonTables(context.Background(), al[0].URL)
	require.NoError(t, err)
	assert.Len(t, tables, 2)
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(seasonPageHTML))
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL, MaxRetries: 3})
	tables, err := c.SeasonTables(context.Background(), srv.URL+"/page")
	require.NoError(t, err)
	assert.Len(t, tables, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL, MaxRetries: 3})
	_, err := c.SeasonTables(context.Background(), srv.URL+"/gone")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "a 404 is permanent")
}

func TestClientDecodesLegacyCharset(t *testing.T) {
	// "12½" in ISO-8859-1: the ½ glyph is byte 0xBD.
	page := append([]byte(`<html><body><div class="ba-table"><h2>T</h2><table><tr><td>12`), 0xBD)
	page = append(page, []byte(`</td></tr></table></div></body></html>`)...)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		w.Write(page)
	}))
	defer srv.Close()

	c := NewClient(ClientOptions{BaseURL: srv.URL})
	tables, err := c.SeasonTables(context.Background(), srv.URL+"/p")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	require.NotEmpty(t, tables[0].Rows)
	assert.Equal(t, "12½", tables[0].Rows[0].Cells[0].Text)
}
