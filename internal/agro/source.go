package agro

import "context"

// CurrentWeatherSource abstracts the live-conditions upstream.
type CurrentWeatherSource interface {
	Name() string
	FetchCurrent(ctx context.Context, coord Coordinate) (WeatherData, error)
}

// ClimateSource fetches archived daily climate for a window. Failures are
// reported in the record's Status rather than as an error because the
// aggregation pipeline treats every source as optional.
type ClimateSource interface {
	FetchClimate(ctx context.Context, coord Coordinate, w Window) ClimateArchive
}

// SoilStateSource fetches archived hourly topsoil series for a window.
type SoilStateSource interface {
	FetchSoilState(ctx context.Context, coord Coordinate, w Window) SoilArchive
}

// PowerSource fetches NASA POWER daily summaries for a window.
type PowerSource interface {
	FetchPower(ctx context.Context, coord Coordinate, w Window) PowerSummary
}

// SoilPropertiesSource fetches static soil properties for a point.
type SoilPropertiesSource interface {
	FetchSoilProperties(ctx context.Context, coord Coordinate) SoilGridsReport
}

// ObservationSink is the contract the SQLite store (and any future persistent
// store) must satisfy. Writes are best effort; callers log and move on.
type ObservationSink interface {
	SaveWeather(coord Coordinate, w WeatherData) error
	SaveSoil(coord Coordinate, soil SoilData) error
	SaveRecommendations(coord Coordinate, recs []CropRecommendation) error
}
