package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVGridRaggedRows(t *testing.T) {
	input := "Player,Points,\"22, 25, 28, 19\",27.5/-110\njunk\n,Rebounds,\"8, 10, 7\",9.5/-115,11.5/+120\n"

	grid, err := ParseCSVGrid(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, grid, 3)

	assert.Equal(t, []string{"Player", "Points", "22, 25, 28, 19", "27.5/-110"}, grid[0])
	assert.Equal(t, []string{"junk"}, grid[1])
	assert.Len(t, grid[2], 5)
}

func TestCSVSourceFetchGrid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Points,\"22, 25\",24.5/-110\n"))
	}))
	defer server.Close()

	client := NewRetryingHTTPClient(DefaultHTTPClientConfig(), logrus.New())
	defer client.Close()

	source := NewCSVSource(client, server.URL, "test-token", true, logrus.New())
	grid, err := source.FetchGrid(context.Background())
	require.NoError(t, err)
	require.Len(t, grid, 1)
	assert.Equal(t, "Points", grid[0][0])
}

func TestRetryingHTTPClientDo(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewRetryingHTTPClient(DefaultHTTPClientConfig(), logrus.New())
	defer client.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer t0k3n")

	resp, err := client.Do(context.Background(), req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer t0k3n", gotAuth, "request headers must survive the retry wrapping")
}

func TestRetryingHTTPClientHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	cfg := DefaultHTTPClientConfig()
	cfg.MaxRetries = 0
	client := NewRetryingHTTPClient(cfg, logrus.New())
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(ctx, req)
	assert.Error(t, err)
}

func TestCSVSourceDisabled(t *testing.T) {
	client := NewRetryingHTTPClient(DefaultHTTPClientConfig(), logrus.New())
	defer client.Close()

	source := NewCSVSource(client, "http://unused", "", false, logrus.New())
	_, err := source.FetchGrid(context.Background())
	require.Error(t, err)

	var sheetErr SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, ErrCodeDisabled, sheetErr.Code)
}

func TestCSVSourceAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewRetryingHTTPClient(DefaultHTTPClientConfig(), logrus.New())
	defer client.Close()

	source := NewCSVSource(client, server.URL, "bad", true, logrus.New())
	_, err := source.FetchGrid(context.Background())

	var sheetErr SheetError
	require.ErrorAs(t, err, &sheetErr)
	assert.Equal(t, ErrCodeAuthenticationFailed, sheetErr.Code)
}

func TestFileSource(t *testing.T) {
	path := t.TempDir() + "/grid.csv"
	require.NoError(t, os.WriteFile(path, []byte("Points,\"22, 25\",24.5/-110\n"), 0o600))

	grid, err := NewFileSource(path).FetchGrid(context.Background())
	require.NoError(t, err)
	require.Len(t, grid, 1)

	_, err = NewFileSource(t.TempDir() + "/missing.csv").FetchGrid(context.Background())
	require.Error(t, err)
}

// countingSource counts fetches so cache behavior is observable
type countingSource struct {
	fetches int
	grid    [][]string
}

func (s *countingSource) FetchGrid(ctx context.Context) ([][]string, error) {
	s.fetches++
	return s.grid, nil
}

func (s *countingSource) Name() string    { return "counting" }
func (s *countingSource) IsEnabled() bool { return true }

func TestCachedSourceServesFromCache(t *testing.T) {
	inner := &countingSource{grid: [][]string{{"Points", "22, 25", "24.5/-110"}}}
	cached := NewCachedSource(inner, time.Minute)

	ctx := context.Background()
	first, err := cached.FetchGrid(ctx)
	require.NoError(t, err)
	second, err := cached.FetchGrid(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.fetches)

	hits, misses, _ := cached.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestCachedSourceInvalidate(t *testing.T) {
	inner := &countingSource{grid: [][]string{{"Points", "22, 25", "24.5/-110"}}}
	cached := NewCachedSource(inner, time.Minute)

	ctx := context.Background()
	_, err := cached.FetchGrid(ctx)
	require.NoError(t, err)

	cached.Invalidate()
	_, err = cached.FetchGrid(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.fetches)
}

func TestCachedSourceLastSnapshot(t *testing.T) {
	inner := &countingSource{grid: [][]string{{"Points", "22, 25", "24.5/-110"}}}
	cached := NewCachedSource(inner, time.Minute)

	raw, fetchedAt := cached.LastSnapshot()
	assert.Nil(t, raw)
	assert.True(t, fetchedAt.IsZero())

	_, err := cached.FetchGrid(context.Background())
	require.NoError(t, err)

	raw, fetchedAt = cached.LastSnapshot()
	assert.Equal(t, inner.grid, raw)
	assert.False(t, fetchedAt.IsZero())
}
