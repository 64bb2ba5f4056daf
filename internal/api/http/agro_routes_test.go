package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
	"github.com/ItUser-Softwares/AgriGrow/internal/observability"
)

// stubWeather is a canned CurrentWeatherSource with a fetch counter.
type stubWeather struct {
	mu    sync.Mutex
	calls int
	data  agro.WeatherData
	err   error
}

func (s *stubWeather) Name() string { return "stub-weather" }

func (s *stubWeather) FetchCurrent(_ context.Context, _ agro.Coordinate) (agro.WeatherData, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return agro.WeatherData{}, s.err
	}
	return s.data, nil
}

func (s *stubWeather) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newAgroApp(src agro.CurrentWeatherSource) *fiber.App {
	app := fiber.New()
	svc := agro.NewAnalysisService(src, nil, observability.NewMetricsForTesting())
	RegisterAgroRoutes(app, svc)
	return app
}

func TestWeatherRoute_ReturnsReading(t *testing.T) {
	src := &stubWeather{data: agro.WeatherData{
		Temperature: 22.0,
		Humidity:    55.0,
		Rainfall:    0.4,
		WindSpeed:   9.0,
		Date:        "2024-04-26T17:00",
	}}
	app := newAgroApp(src)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/31.5804/74.3587", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got agro.WeatherData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, src.data, got)
}

func TestWeatherRoute_UpstreamFailure(t *testing.T) {
	app := newAgroApp(&stubWeather{err: assert.AnError})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/31.5804/74.3587", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWeatherRoute_RejectsOutsideBoundary(t *testing.T) {
	src := &stubWeather{}
	app := newAgroApp(src)

	// Paris is well outside the service area; the source must never be hit.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/48.8566/2.3522", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, 0, src.callCount())
}

func TestWeatherRoute_InvalidCoordinates(t *testing.T) {
	app := newAgroApp(&stubWeather{})

	for _, path := range []string{
		"/api/v1/weather/abc/74.3587",
		"/api/v1/weather/31.5804/xyz",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestSoilRoute_RegionalProfile(t *testing.T) {
	app := newAgroApp(&stubWeather{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/soil/31.5804/74.3587", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got agro.SoilData
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 7.2, got.PH)
	assert.Equal(t, "Alluvial", got.SoilType)
}

func TestCropsRoute_ResponseShape(t *testing.T) {
	app := newAgroApp(&stubWeather{data: agro.WeatherData{Temperature: 22.0}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/crops/31.5804/74.3587", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Location struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		Recommendations []agro.CropRecommendation `json:"recommendations"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, 31.5804, got.Location.Latitude)
	assert.Equal(t, 74.3587, got.Location.Longitude)
	require.NotEmpty(t, got.Recommendations)
	assert.Equal(t, "Wheat", got.Recommendations[0].CropName)
	assert.Equal(t, 10.0, got.Recommendations[0].SuitabilityScore)
}

func TestAnalysisRoute_ResolvesRegion(t *testing.T) {
	app := newAgroApp(&stubWeather{data: agro.WeatherData{Temperature: 22.0}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/analysis/31.5804/74.3587", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got agro.Analysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "Punjab", got.Location.Region)
	assert.Equal(t, "Pakistan", got.Location.Country)
	assert.Equal(t, 22.0, got.Weather.Temperature)
	assert.Equal(t, 7.2, got.Soil.PH)
	assert.NotEmpty(t, got.Recommendations)
}

func TestBatchRoute_TooManyLocations(t *testing.T) {
	src := &stubWeather{}
	app := newAgroApp(src)

	var body strings.Builder
	body.WriteString("[")
	for i := 0; i < 12; i++ {
		if i > 0 {
			body.WriteString(",")
		}
		body.WriteString(`{"latitude": 31.5, "longitude": 74.3}`)
	}
	body.WriteString("]")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch-analysis", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	// The size check rejects the batch before any fetch happens.
	assert.Equal(t, 0, src.callCount())
}

func TestBatchRoute_InvalidBody(t *testing.T) {
	app := newAgroApp(&stubWeather{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch-analysis", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchRoute_FiltersOutsideLocations(t *testing.T) {
	src := &stubWeather{data: agro.WeatherData{Temperature: 22.0}}
	app := newAgroApp(src)

	body := `[{"latitude": 31.5804, "longitude": 74.3587}, {"latitude": 48.8566, "longitude": 2.3522}]`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch-analysis", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Results []agro.Analysis `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.Len(t, got.Results, 1)
	assert.Equal(t, "Punjab", got.Results[0].Location.Region)
	assert.Equal(t, 1, src.callCount())
}

func TestDistrictsRoute_GroupedByProvince(t *testing.T) {
	app := newAgroApp(&stubWeather{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/districts", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string][]agro.District
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	require.Contains(t, got, "Punjab")
	require.Contains(t, got, "Sindh")
	require.Contains(t, got, "KPK")
	require.Contains(t, got, "Balochistan")

	names := make([]string, 0, len(got["Punjab"]))
	for _, d := range got["Punjab"] {
		names = append(names, d.Name)
	}
	assert.Contains(t, names, "Lahore")
	assert.Equal(t, 31.5804, got["Punjab"][0].Lat)
}
