package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const laureatesJSON = `{"laureates": [
  {"id": "1004", "knownName": {"en": "Andrea Ghez"},
   "nobelPrizes": [{"awardYear": "2020", "affiliations": [{"name": {"en": "University of California"}}]}]},
  {"id": "960", "knownName": {"en": "Jim Peebles"},
   "nobelPrizes": [{"awardYear": "2019", "affiliations": [{"name": {"en": "Princeton University"}}]}]}
]}`

func setup(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	t.Setenv("NOBEL_API_URL", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := fmt.Sprintf("api:\n  base_url: %q\n  rate_limit: 100\nlog:\n  level: error\n", server.URL)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func runFetcher(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(input), &out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestFetcherWithYearFlag(t *testing.T) {
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(laureatesJSON))
	})

	out, err := runFetcher(t, "", "--config", configPath, "--year", "2020")
	require.NoError(t, err)

	expected := "---------------------------------\n" +
		"Full name: Andrea Ghez\n" +
		"Award year: 2020\n" +
		"Affiliations: University of California\n\n"
	assert.Equal(t, expected, out)
}

func TestFetcherPromptsForYear(t *testing.T) {
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(laureatesJSON))
	})

	out, err := runFetcher(t, "soon\n1990\n2019\n", "--config", configPath)
	require.NoError(t, err)

	assert.Contains(t, out, "Entered value is not a number! Try again.")
	assert.Contains(t, out, "Entered number is not a year between 2000 and 2023!")
	assert.Contains(t, out, "Full name: Jim Peebles")
	assert.NotContains(t, out, "Andrea Ghez")
}

func TestFetcherNoMatches(t *testing.T) {
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(laureatesJSON))
	})

	out, err := runFetcher(t, "", "--config", configPath, "--year", "2005")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFetcherYearOutOfRange(t *testing.T) {
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called")
	})

	_, err := runFetcher(t, "", "--config", configPath, "--year", "1999")
	assert.Error(t, err)
}

func TestFetcherAPIError(t *testing.T) {
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := runFetcher(t, "", "--config", configPath, "--year", "2020")
	assert.Error(t, err)
}

func TestFetcherFlagOverrides(t *testing.T) {
	var category string
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		category = r.URL.Query().Get("nobelPrizeCategory")
		w.Write([]byte(`{"laureates": []}`))
	})

	_, err := runFetcher(t, "", "--config", configPath, "--year", "2020", "--category", "med")
	require.NoError(t, err)
	assert.Equal(t, "med", category)

	_, err = runFetcher(t, "", "--config", configPath, "--year", "2020", "--category", "art")
	assert.Error(t, err)
}

func TestFetcherYearZeroRejected(t *testing.T) {
	configPath := setup(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("API must not be called")
	})

	// An explicit --year 0 fails the range check instead of opening the prompt.
	out, err := runFetcher(t, "2020\n", "--config", configPath, "--year", "0")
	assert.Error(t, err)
	assert.NotContains(t, out, "Enter the year")
}
