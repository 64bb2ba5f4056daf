package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

// ClimateArchive implements agro.ClimateSource against the Open-Meteo ERA5
// archive, pulling daily precipitation, reference evapotranspiration and mean
// temperature for a window.
type ClimateArchive struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewClimateArchive(client *http.Client) *ClimateArchive {
	return &ClimateArchive{
		baseURL: "https://archive-api.open-meteo.com/v1/era5",
		client:  client,
		circuit: newBreaker("open-meteo-archive"),
	}
}

func (p *ClimateArchive) FetchClimate(ctx context.Context, coord agro.Coordinate, w agro.Window) agro.ClimateArchive {
	rec := agro.ClimateArchive{
		Source: "open-meteo-archive",
		Period: w.Period(),
		Daily:  []agro.DailyClimate{},
	}

	values := url.Values{}
	values.Set("latitude", formatCoord(coord.Lat))
	values.Set("longitude", formatCoord(coord.Lon))
	values.Set("start_date", rec.Period.Start)
	values.Set("end_date", rec.Period.End)
	values.Set("daily", "precipitation_sum,et0_fao_evapotranspiration,temperature_2m_mean")
	values.Set("timezone", "auto")

	var payload struct {
		Daily struct {
			Time             []string   `json:"time"`
			PrecipitationSum []*float64 `json:"precipitation_sum"`
			ET0              []*float64 `json:"et0_fao_evapotranspiration"`
			Temperature2M    []*float64 `json:"temperature_2m_mean"`
		} `json:"daily"`
	}

	if err := fetchJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		rec.Err = err
		return rec
	}
	rec.OK = true

	daily := payload.Daily
	for i, date := range daily.Time {
		rec.Daily = append(rec.Daily, agro.DailyClimate{
			Date:            date,
			PrecipitationMM: valueAt(daily.PrecipitationSum, i),
			ET0MM:           valueAt(daily.ET0, i),
			TMeanC:          valueAt(daily.Temperature2M, i),
		})
	}

	rec.Aggregates = agro.ClimateAggregates{
		TotalPrecipMM: sumOf(daily.PrecipitationSum),
		TotalET0MM:    sumOf(daily.ET0),
		AvgTMeanC:     meanOf(daily.Temperature2M),
		Days:          len(daily.Time),
	}
	return rec
}
