package handle

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSummary(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHandle(nil).Summary(rec, req)
	return rec
}

func TestSummary(t *testing.T) {
	rec := postSummary(t, `{"running":["4:30","04:45"],"stations":{"ski":"03:20"},"roxzone":"08:30"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Equal(t, 555, out.RunningTotal)
	assert.Equal(t, 200, out.StationTotal)
	assert.Equal(t, 510, out.RoxzoneTime)
	assert.Equal(t, 1265, out.OverallTotal)
	assert.Equal(t, "21:05", out.Formatted.OverallTotal)
	assert.Equal(t, "09:15", out.Formatted.RunningTotal)
	require.Len(t, out.Lines, 4)
}

func TestSummary_Empty(t *testing.T) {
	rec := postSummary(t, `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var out SummaryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	assert.Zero(t, out.OverallTotal)
	assert.Equal(t, "00:00", out.Formatted.OverallTotal)
}

func TestSummary_InvalidTimes(t *testing.T) {
	cases := map[string]string{
		`{"running":["04:30","5:7"]}`:      "running[1]",
		`{"stations":{"rowing":"04:60"}}`:  "stations.rowing",
		`{"stations":{"bench":"01:00"}}`:   "unknown station",
		`{"stations":{"running":"01:00"}}`: "unknown station",
		`{"roxzone":"8.30"}`:               "roxzone",
		`not json`:                         "bad json",
	}
	for body, want := range cases {
		rec := postSummary(t, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Contains(t, decodeError(t, rec), want, body)
	}
}
