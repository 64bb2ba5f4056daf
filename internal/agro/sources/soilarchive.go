package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

// SoilArchive implements agro.SoilStateSource against the same ERA5 archive,
// using the hourly topsoil moisture and temperature series.
type SoilArchive struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewSoilArchive(client *http.Client) *SoilArchive {
	return &SoilArchive{
		baseURL: "https://archive-api.open-meteo.com/v1/era5",
		client:  client,
		circuit: newBreaker("open-meteo-soil-archive"),
	}
}

func (p *SoilArchive) FetchSoilState(ctx context.Context, coord agro.Coordinate, w agro.Window) agro.SoilArchive {
	rec := agro.SoilArchive{
		Source: "open-meteo-soil-archive",
		Period: w.Period(),
	}

	values := url.Values{}
	values.Set("latitude", formatCoord(coord.Lat))
	values.Set("longitude", formatCoord(coord.Lon))
	values.Set("start_date", rec.Period.Start)
	values.Set("end_date", rec.Period.End)
	values.Set("hourly", "soil_moisture_0_to_7cm,soil_temperature_0_to_7cm")
	values.Set("timezone", "auto")

	var payload struct {
		Hourly struct {
			Time         []string   `json:"time"`
			SoilMoisture []*float64 `json:"soil_moisture_0_to_7cm"`
			SoilTemp     []*float64 `json:"soil_temperature_0_to_7cm"`
		} `json:"hourly"`
	}

	if err := fetchJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		rec.Err = err
		return rec
	}
	rec.OK = true

	hourly := payload.Hourly
	if n := len(hourly.Time); n > 0 {
		// Latest time is the newest timestamp even when its readings are
		// null; the readings themselves come from the newest non-null hour.
		t := hourly.Time[n-1]
		rec.Latest.Time = &t
	}
	rec.Latest.SoilMoistureM3M3 = latestOf(hourly.SoilMoisture)
	rec.Latest.SoilTempC = latestOf(hourly.SoilTemp)

	rec.Aggregates = agro.SoilAggregates{
		MeanSoilMoistureM3M3: meanOf(hourly.SoilMoisture),
		MeanSoilTempC:        meanOf(hourly.SoilTemp),
		ObsCount:             len(hourly.Time),
	}
	return rec
}
