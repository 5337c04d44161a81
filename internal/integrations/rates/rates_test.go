package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lalax124/arthaai/internal/config"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2025-08-28">
			<Cube currency="USD" rate="1.0842"/>
			<Cube currency="INR" rate="95.1375"/>
			<Cube currency="GBP" rate="0.8571"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClient(&config.Config{ECBRatesURL: srv.URL}, log)
}

func TestDaily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		w.Write([]byte(sampleFeed))
	})

	rates, err := client.Daily(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-08-28", rates.Date)
	assert.Equal(t, "EUR", rates.Base)
	assert.Equal(t, 1.0842, rates.Rates["USD"])
	assert.Equal(t, 95.1375, rates.Rates["INR"])
	assert.Len(t, rates.Rates, 3)
}

func TestDailyBadFeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<Envelope></Envelope>`))
	})

	_, err := client.Daily(context.Background())
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	rates := &Rates{
		Base:  "EUR",
		Rates: map[string]float64{"USD": 1.08, "INR": 95.0},
	}

	// EUR -> USD
	usd, err := rates.Convert(100, "EUR", "USD")
	require.NoError(t, err)
	assert.InDelta(t, 108.0, usd, 1e-9)

	// USD -> INR via the EUR base
	inr, err := rates.Convert(108, "USD", "INR")
	require.NoError(t, err)
	assert.InDelta(t, 9500.0, inr, 1e-9)

	_, err = rates.Convert(1, "EUR", "XXX")
	assert.Error(t, err)
}
