package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

func TestOpenMeteoCurrent_FetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "31.580400", q.Get("latitude"))
		assert.Equal(t, "74.358700", q.Get("longitude"))
		assert.Equal(t, "temperature_2m,relative_humidity_2m,rain,wind_speed_10m", q.Get("current"))
		assert.Equal(t, "Asia/Karachi", q.Get("timezone"))

		_, _ = w.Write([]byte(`{
			"current": {
				"time": "2024-04-26T17:00",
				"temperature_2m": 31.4,
				"relative_humidity_2m": 40.0,
				"rain": 0.2,
				"wind_speed_10m": 11.5
			}
		}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoCurrent(srv.Client())
	p.baseURL = srv.URL

	got, err := p.FetchCurrent(context.Background(), agro.Coordinate{Lat: 31.5804, Lon: 74.3587})
	require.NoError(t, err)

	assert.Equal(t, agro.WeatherData{
		Temperature: 31.4,
		Humidity:    40.0,
		Rainfall:    0.2,
		WindSpeed:   11.5,
		Date:        "2024-04-26T17:00",
	}, got)
}

func TestOpenMeteoCurrent_FetchCurrent_PartialPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"current": {"time": "2024-04-26T17:00", "temperature_2m": 28.0}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoCurrent(srv.Client())
	p.baseURL = srv.URL

	got, err := p.FetchCurrent(context.Background(), agro.Coordinate{Lat: 31.5804, Lon: 74.3587})
	require.NoError(t, err)

	assert.Equal(t, 28.0, got.Temperature)
	assert.Zero(t, got.Humidity)
	assert.Zero(t, got.Rainfall)
	assert.Zero(t, got.WindSpeed)
}

func TestOpenMeteoCurrent_FetchCurrent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewOpenMeteoCurrent(srv.Client())
	p.baseURL = srv.URL

	_, err := p.FetchCurrent(context.Background(), agro.Coordinate{Lat: 31.5804, Lon: 74.3587})
	require.Error(t, err)
	assert.Equal(t, "open-meteo-current", p.Name())
}

func TestOpenMeteoCurrent_FetchCurrent_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"current": {}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoCurrent(srv.Client())
	p.baseURL = srv.URL

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.FetchCurrent(ctx, agro.Coordinate{Lat: 31.5804, Lon: 74.3587})
	require.Error(t, err)
}
