package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

// NASAPower implements agro.PowerSource against the NASA POWER daily point
// API for agro-community temperature, humidity, precipitation and solar data.
type NASAPower struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewNASAPower(client *http.Client) *NASAPower {
	return &NASAPower{
		baseURL: "https://power.larc.nasa.gov/api/temporal/daily/point",
		client:  client,
		circuit: newBreaker("nasa-power"),
	}
}

func (p *NASAPower) FetchPower(ctx context.Context, coord agro.Coordinate, w agro.Window) agro.PowerSummary {
	rec := agro.PowerSummary{
		Source: "nasa-power-daily",
		Period: w.Period(),
	}

	values := url.Values{}
	values.Set("parameters", "T2M,RH2M,PRECTOTCORR,ALLSKY_SFC_SW_DWN")
	values.Set("community", "AG")
	values.Set("latitude", formatCoord(coord.Lat))
	values.Set("longitude", formatCoord(coord.Lon))
	values.Set("start", w.CompactStart())
	values.Set("end", w.CompactEnd())
	values.Set("format", "JSON")

	// POWER keys each parameter by compact date (yyyymmdd).
	var payload struct {
		Properties struct {
			Parameter struct {
				T2M         map[string]*float64 `json:"T2M"`
				RH2M        map[string]*float64 `json:"RH2M"`
				PrecTotCorr map[string]*float64 `json:"PRECTOTCORR"`
				AllSkySW    map[string]*float64 `json:"ALLSKY_SFC_SW_DWN"`
			} `json:"parameter"`
		} `json:"properties"`
	}

	if err := fetchJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		rec.Err = err
		return rec
	}
	rec.OK = true

	param := payload.Properties.Parameter
	rec.Aggregates = agro.PowerAggregates{
		AvgT2MC:          meanOf(sortedValues(param.T2M)),
		AvgRH2MPct:       meanOf(sortedValues(param.RH2M)),
		TotalPrecipMM:    sumOf(sortedValues(param.PrecTotCorr)),
		AvgSolarKWhM2Day: meanOf(sortedValues(param.AllSkySW)),
		Days:             len(param.T2M),
	}
	return rec
}
