package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalax124/arthaai/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{EODHDURL: srv.URL, EODHDAPIKey: "test-key"}, log)
}

func TestHistory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/eod/AAPL", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_token"))
		assert.Equal(t, "d", r.URL.Query().Get("period"))
		assert.NotEmpty(t, r.URL.Query().Get("from"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"date":"2025-08-27","open":180.1,"high":182.5,"low":179.8,"close":181.2,"volume":51230000},
			{"date":"2025-08-28","open":181.3,"high":183.0,"low":180.9,"close":182.7,"volume":48110000}
		]`))
	})

	bars, err := client.History(context.Background(), "AAPL", "1y")
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "2025-08-27", bars[0].Date)
	assert.Equal(t, 181.2, bars[0].Close)
	assert.Equal(t, int64(48110000), bars[1].Volume)
}

func TestHistoryUnknownTicker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	bars, err := client.History(context.Background(), "NOPE", "1y")
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestHistoryServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.History(context.Background(), "AAPL", "1y")
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/fundamentals/AAPL", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"General": {"Name": "Apple Inc"},
			"Highlights": {"PERatio": 29.4, "DividendYield": 0.0052}
		}`))
	})

	info, err := client.Info(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "Apple Inc", info.Name)
	require.NotNil(t, info.PERatio)
	assert.Equal(t, 29.4, *info.PERatio)
	require.NotNil(t, info.DividendYield)
	assert.Equal(t, 0.0052, *info.DividendYield)
}

func TestInfoMissingFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"General": {"Name": "Mystery Corp"}, "Highlights": {}}`))
	})

	info, err := client.Info(context.Background(), "MYST")
	require.NoError(t, err)
	assert.Equal(t, "Mystery Corp", info.Name)
	assert.Nil(t, info.PERatio)
	assert.Nil(t, info.DividendYield)
}

func TestFromDate(t *testing.T) {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -7), fromDate("1d", now))
	assert.Equal(t, now.AddDate(0, -1, 0), fromDate("1mo", now))
	assert.Equal(t, now.AddDate(0, -3, 0), fromDate("3mo", now))
	assert.Equal(t, now.AddDate(-1, 0, 0), fromDate("1y", now))
	assert.Equal(t, now.AddDate(-1, 0, 0), fromDate("anything else", now))
}
