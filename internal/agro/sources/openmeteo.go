package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

// OpenMeteoCurrent implements agro.CurrentWeatherSource against the Open-Meteo
// forecast API. Readings are requested in Pakistan local time.
type OpenMeteoCurrent struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoCurrent(client *http.Client) *OpenMeteoCurrent {
	return &OpenMeteoCurrent{
		name:    "open-meteo-current",
		baseURL: "https://api.open-meteo.com/v1/forecast",
		client:  client,
		circuit: newBreaker("open-meteo-current"),
	}
}

func (p *OpenMeteoCurrent) Name() string {
	return p.name
}

func (p *OpenMeteoCurrent) FetchCurrent(ctx context.Context, coord agro.Coordinate) (agro.WeatherData, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(coord.Lat))
	values.Set("longitude", formatCoord(coord.Lon))
	values.Set("current", "temperature_2m,relative_humidity_2m,rain,wind_speed_10m")
	values.Set("timezone", "Asia/Karachi")

	// Missing fields decode to zero values, which is what downstream scoring
	// expects for absent readings.
	var payload struct {
		Current struct {
			Time               string  `json:"time"`
			Temperature2M      float64 `json:"temperature_2m"`
			RelativeHumidity2M float64 `json:"relative_humidity_2m"`
			Rain               float64 `json:"rain"`
			WindSpeed10M       float64 `json:"wind_speed_10m"`
		} `json:"current"`
	}

	if err := fetchJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return agro.WeatherData{}, err
	}

	return agro.WeatherData{
		Temperature: payload.Current.Temperature2M,
		Humidity:    payload.Current.RelativeHumidity2M,
		Rainfall:    payload.Current.Rain,
		WindSpeed:   payload.Current.WindSpeed10M,
		Date:        payload.Current.Time,
	}, nil
}
