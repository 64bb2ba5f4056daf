package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
	"github.com/ItUser-Softwares/AgriGrow/internal/observability"
)

type okClimate struct{}

func (okClimate) FetchClimate(_ context.Context, _ agro.Coordinate, w agro.Window) agro.ClimateArchive {
	return agro.ClimateArchive{
		Source: "open-meteo-archive",
		Period: w.Period(),
		Daily:  []agro.DailyClimate{},
		Status: agro.Status{OK: true},
	}
}

type okSoil struct{}

func (okSoil) FetchSoilState(_ context.Context, _ agro.Coordinate, w agro.Window) agro.SoilArchive {
	return agro.SoilArchive{
		Source: "open-meteo-soil-archive",
		Period: w.Period(),
		Status: agro.Status{OK: true},
	}
}

type okPower struct{}

func (okPower) FetchPower(_ context.Context, _ agro.Coordinate, w agro.Window) agro.PowerSummary {
	return agro.PowerSummary{
		Source: "nasa-power-daily",
		Period: w.Period(),
		Status: agro.Status{OK: true},
	}
}

type okGrids struct{}

func (okGrids) FetchSoilProperties(_ context.Context, _ agro.Coordinate) agro.SoilGridsReport {
	return agro.SoilGridsReport{
		Source: "isric-soilgrids-v2",
		Layers: []agro.SoilLayer{},
		Status: agro.Status{OK: true},
	}
}

func newAggregateApp() *fiber.App {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC))
	svc := agro.NewAggregateService(okClimate{}, okSoil{}, okPower{}, okGrids{}, clock, observability.NewMetricsForTesting())

	app := fiber.New()
	RegisterAggregateRoutes(app, svc)
	return app
}

func TestHealthRoute(t *testing.T) {
	app := newAggregateApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		OK      bool   `json:"ok"`
		TimeUTC string `json:"time_utc"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.OK)
	assert.Equal(t, "2024-04-26T12:00:00Z", got.TimeUTC)
}

func TestAggregateRoute_Validation(t *testing.T) {
	app := newAggregateApp()

	cases := []struct {
		name   string
		target string
	}{
		{"missing lat", "/aggregate?lon=74.3"},
		{"missing lon", "/aggregate?lat=31.5"},
		{"days too small", "/aggregate?lat=31.5&lon=74.3&days=0"},
		{"days too large", "/aggregate?lat=31.5&lon=74.3&days=61"},
		{"lat out of range", "/aggregate?lat=91&lon=74.3"},
		{"lon out of range", "/aggregate?lat=31.5&lon=-181"},
		{"days not a number", "/aggregate?lat=31.5&lon=74.3&days=week"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.target, nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestAggregateRoute_DefaultWindow(t *testing.T) {
	app := newAggregateApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/aggregate?lat=31.5&lon=74.3", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got agro.AggregateResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	// days defaults to 7 against the service clock.
	assert.Equal(t, agro.Period{Start: "2024-04-19", End: "2024-04-26"}, got.Features.Period)
	assert.Equal(t, agro.Coordinate{Lat: 31.5, Lon: 74.3}, got.Features.Location)
	assert.Equal(t, map[string]bool{
		"open_meteo_archive": true,
		"open_meteo_soil":    true,
		"nasa_power":         true,
		"soilgrids":          true,
	}, got.Features.SourcesOK)
	assert.Equal(t, "open-meteo-archive", got.Sources.OpenMeteoArchive.Source)
}

func TestAggregateRoute_CustomDays(t *testing.T) {
	app := newAggregateApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/aggregate?lat=31.5&lon=74.3&days=30", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got agro.AggregateResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, agro.Period{Start: "2024-03-27", End: "2024-04-26"}, got.Features.Period)
}
