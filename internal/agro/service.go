package agro

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ItUser-Softwares/AgriGrow/internal/observability"
)

// AnalysisService orchestrates live weather fetches, regional lookups and crop
// scoring for the farm-advisory API. It owns the persistence sink; writes are
// fire and forget so a broken database never delays or fails a response.
type AnalysisService struct {
	weather CurrentWeatherSource
	sink    ObservationSink
	metrics *observability.Metrics
}

// NewAnalysisService creates a new AnalysisService. sink may be nil, in which
// case nothing is persisted.
func NewAnalysisService(weather CurrentWeatherSource, sink ObservationSink, metrics *observability.Metrics) *AnalysisService {
	return &AnalysisService{
		weather: weather,
		sink:    sink,
		metrics: metrics,
	}
}

// CurrentWeather fetches live conditions for the given point and persists the
// reading in the background.
func (s *AnalysisService) CurrentWeather(ctx context.Context, coord Coordinate) (WeatherData, error) {
	start := time.Now()
	w, err := s.weather.FetchCurrent(ctx, coord)
	s.metrics.SourceDuration.WithLabelValues(s.weather.Name()).Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.SourceRequests.WithLabelValues(s.weather.Name(), "error").Inc()
		log.Printf("ERROR: source %s fetch failed for %.4f,%.4f: %v", s.weather.Name(), coord.Lat, coord.Lon, err)
		return WeatherData{}, err
	}
	s.metrics.SourceRequests.WithLabelValues(s.weather.Name(), "success").Inc()

	s.persist("weather_data", func(sink ObservationSink) error {
		return sink.SaveWeather(coord, w)
	})
	return w, nil
}

// Soil returns the regional soil profile for the given point.
func (s *AnalysisService) Soil(coord Coordinate) SoilData {
	return SoilFor(coord)
}

// Crops fetches current weather and scores all known crops against it and the
// regional soil profile.
func (s *AnalysisService) Crops(ctx context.Context, coord Coordinate) ([]CropRecommendation, error) {
	w, err := s.CurrentWeather(ctx, coord)
	if err != nil {
		return nil, err
	}

	recs := Recommend(w, SoilFor(coord))
	s.metrics.RecommendationsServed.Inc()
	s.persist("crop_recommendations", func(sink ObservationSink) error {
		return sink.SaveRecommendations(coord, recs)
	})
	return recs, nil
}

// Analyze produces the combined weather, soil and crop view for one point.
// It fails only when the live weather fetch fails; everything downstream of
// the fetch is derived locally.
func (s *AnalysisService) Analyze(ctx context.Context, coord Coordinate) (Analysis, error) {
	w, err := s.CurrentWeather(ctx, coord)
	if err != nil {
		return Analysis{}, err
	}

	soil := SoilFor(coord)
	recs := Recommend(w, soil)
	s.metrics.RecommendationsServed.Inc()

	s.persist("soil_data", func(sink ObservationSink) error {
		return sink.SaveSoil(coord, soil)
	})
	s.persist("crop_recommendations", func(sink ObservationSink) error {
		return sink.SaveRecommendations(coord, recs)
	})

	return Analysis{
		Location: AnalysisLocation{
			Latitude:  coord.Lat,
			Longitude: coord.Lon,
			Region:    RegionName(coord),
			Country:   "Pakistan",
		},
		Weather:         w,
		Soil:            soil,
		Recommendations: recs,
	}, nil
}

// BatchAnalyze analyzes up to the caller-validated set of points concurrently.
// Points outside Pakistan are skipped without a fetch, and points whose
// weather fetch fails are dropped; surviving results keep input order.
func (s *AnalysisService) BatchAnalyze(ctx context.Context, coords []Coordinate) []Analysis {
	results := make([]*Analysis, len(coords))

	var wg sync.WaitGroup
	for i, coord := range coords {
		if !InPakistan(coord) {
			log.Printf("DEBUG: batch skipping %.4f,%.4f outside Pakistan", coord.Lat, coord.Lon)
			continue
		}

		wg.Add(1)
		go func(i int, coord Coordinate) {
			defer wg.Done()

			a, err := s.Analyze(ctx, coord)
			if err != nil {
				// Already logged; partial batch results are expected.
				return
			}
			results[i] = &a
			s.metrics.BatchLocationsAnalyzed.Inc()
		}(i, coord)
	}
	wg.Wait()

	out := make([]Analysis, 0, len(coords))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// persist runs one sink write in the background. Failures are logged and
// counted, never returned.
func (s *AnalysisService) persist(table string, write func(ObservationSink) error) {
	if s.sink == nil {
		return
	}
	go func() {
		if err := write(s.sink); err != nil {
			log.Printf("store write to %s failed: %v", table, err)
			s.metrics.StoreWrites.WithLabelValues(table, "error").Inc()
			return
		}
		s.metrics.StoreWrites.WithLabelValues(table, "success").Inc()
	}()
}
