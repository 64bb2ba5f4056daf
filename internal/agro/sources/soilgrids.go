package sources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

var (
	soilDepths = []string{"0-5cm", "5-15cm", "15-30cm", "30-60cm"}

	soilProperties = []string{"phh2o", "ocd", "cec", "clay", "sand", "silt", "bdod"}

	// Texture fractions arrive as g/kg and are reported as percent.
	textureProperties = map[string]bool{"clay": true, "sand": true, "silt": true}
)

// SoilGrids implements agro.SoilPropertiesSource against ISRIC SoilGrids v2.
// Soil properties are static per location, so no window is involved.
type SoilGrids struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewSoilGrids(client *http.Client) *SoilGrids {
	return &SoilGrids{
		baseURL: "https://rest.isric.org/soilgrids/v2.0/properties/query",
		client:  client,
		circuit: newBreaker("soilgrids"),
	}
}

func (p *SoilGrids) FetchSoilProperties(ctx context.Context, coord agro.Coordinate) agro.SoilGridsReport {
	rec := agro.SoilGridsReport{
		Source:   "isric-soilgrids-v2",
		Location: coord,
		Layers:   []agro.SoilLayer{},
	}

	values := url.Values{}
	values.Set("lon", formatCoord(coord.Lon))
	values.Set("lat", formatCoord(coord.Lat))
	for _, prop := range soilProperties {
		values.Add("property", prop)
	}
	for _, depth := range soilDepths {
		values.Add("depth", depth)
	}
	values.Set("value", "mean")

	var payload struct {
		Properties struct {
			Layers []struct {
				Name   string `json:"name"`
				Depths []struct {
					Label  string `json:"label"`
					Values struct {
						Mean *float64 `json:"mean"`
					} `json:"values"`
				} `json:"depths"`
			} `json:"layers"`
		} `json:"properties"`
	}

	if err := fetchJSON(ctx, p.client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		rec.Err = err
		return rec
	}
	rec.OK = true

	// Layers always come back in the fixed depth order regardless of the
	// order the API reports them in.
	depthIndex := make(map[string]int, len(soilDepths))
	layers := make([]agro.SoilLayer, len(soilDepths))
	for i, depth := range soilDepths {
		depthIndex[depth] = i
		layers[i] = agro.SoilLayer{Depth: depth}
	}

	for _, layer := range payload.Properties.Layers {
		for _, depth := range layer.Depths {
			i, ok := depthIndex[depth.Label]
			if !ok {
				continue
			}
			val := depth.Values.Mean
			if val != nil && textureProperties[layer.Name] {
				pct := *val / 10
				val = &pct
			}
			setLayerProperty(&layers[i], layer.Name, val)
		}
	}

	rec.Layers = layers
	return rec
}

func setLayerProperty(layer *agro.SoilLayer, name string, val *float64) {
	switch name {
	case "phh2o":
		layer.PHH2O = val
	case "ocd":
		layer.OCD = val
	case "cec":
		layer.CEC = val
	case "clay":
		layer.Clay = val
	case "sand":
		layer.Sand = val
	case "silt":
		layer.Silt = val
	case "bdod":
		layer.BDOD = val
	}
}
