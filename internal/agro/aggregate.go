package agro

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ItUser-Softwares/AgriGrow/internal/observability"
)

// AggregateService fans one location out to the four archive sources and
// merges their records into a single feature view.
type AggregateService struct {
	climate ClimateSource
	soil    SoilStateSource
	power   PowerSource
	grids   SoilPropertiesSource
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewAggregateService creates a new AggregateService.
func NewAggregateService(
	climate ClimateSource,
	soil SoilStateSource,
	power PowerSource,
	grids SoilPropertiesSource,
	clock clockwork.Clock,
	metrics *observability.Metrics,
) *AggregateService {
	return &AggregateService{
		climate: climate,
		soil:    soil,
		power:   power,
		grids:   grids,
		clock:   clock,
		metrics: metrics,
	}
}

// Now returns the service clock's current time. The health endpoint reports it.
func (s *AggregateService) Now() time.Time {
	return s.clock.Now()
}

// Aggregate fetches all four sources concurrently for the window covering the
// last days days. Source failures surface as raw_ok=false records with null
// merged fields; the run itself never fails.
func (s *AggregateService) Aggregate(ctx context.Context, coord Coordinate, days int) AggregateResult {
	s.metrics.AggregateRequests.Inc()
	w := NewWindow(s.clock, days)

	var (
		wg      sync.WaitGroup
		climate ClimateArchive
		soil    SoilArchive
		power   PowerSummary
		grids   SoilGridsReport
	)

	// Each goroutine writes its own variable; wg.Wait is the barrier.
	wg.Add(4)
	go func() {
		defer wg.Done()
		start := time.Now()
		climate = s.climate.FetchClimate(ctx, coord, w)
		s.record(climate.Source, climate.Status, time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		soil = s.soil.FetchSoilState(ctx, coord, w)
		s.record(soil.Source, soil.Status, time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		power = s.power.FetchPower(ctx, coord, w)
		s.record(power.Source, power.Status, time.Since(start))
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		grids = s.grids.FetchSoilProperties(ctx, coord)
		s.record(grids.Source, grids.Status, time.Since(start))
	}()
	wg.Wait()

	return AggregateResult{
		Features: MergeFeatures(coord, w.Period(), climate, soil, power, grids),
		Sources: SourceRecords{
			OpenMeteoArchive: climate,
			OpenMeteoSoil:    soil,
			NASAPower:        power,
			SoilGrids:        grids,
		},
	}
}

func (s *AggregateService) record(source string, st Status, elapsed time.Duration) {
	s.metrics.SourceDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	if !st.OK {
		log.Printf("source %s fetch failed: %v", source, st.Err)
		s.metrics.SourceRequests.WithLabelValues(source, "error").Inc()
		return
	}
	s.metrics.SourceRequests.WithLabelValues(source, "success").Inc()
}

// MergeFeatures combines the four source records into the merged feature view.
// Rain, ET0 and temperature come from the climate archive; humidity and solar
// come from NASA POWER; moisture comes from the soil archive. Fields stay nil
// when the contributing source failed.
func MergeFeatures(coord Coordinate, period Period, climate ClimateArchive, soil SoilArchive, power PowerSummary, grids SoilGridsReport) FeatureRecord {
	return FeatureRecord{
		Location: coord,
		Period:   period,
		Climate: ClimateSummary{
			TotalRainMM:      climate.Aggregates.TotalPrecipMM,
			TotalET0MM:       climate.Aggregates.TotalET0MM,
			AvgTempC:         climate.Aggregates.AvgTMeanC,
			AvgRHPct:         power.Aggregates.AvgRH2MPct,
			AvgSolarKWhM2Day: power.Aggregates.AvgSolarKWhM2Day,
		},
		SoilState: SoilState{
			LatestSoilMoistureM3M3: soil.Latest.SoilMoistureM3M3,
			LatestSoilTempC:        soil.Latest.SoilTempC,
			MeanSoilMoistureM3M3:   soil.Aggregates.MeanSoilMoistureM3M3,
		},
		SoilProperties: grids.Layers,
		SourcesOK: map[string]bool{
			"open_meteo_archive": climate.OK,
			"open_meteo_soil":    soil.OK,
			"nasa_power":         power.OK,
			"soilgrids":          grids.OK,
		},
	}
}
