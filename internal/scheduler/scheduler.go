package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

// Scheduler periodically snapshots current weather for the district gazetteer
// so the observation log keeps filling even without API traffic.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *agro.AnalysisService
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service *agro.AnalysisService) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic snapshot job and starts the underlying
// scheduler. Intervals below one minute are rounded up to one.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running district snapshot job")

		var wg sync.WaitGroup
		for _, d := range agro.AllDistricts() {
			wg.Add(1)
			go func(d agro.District) {
				defer wg.Done()

				coord := agro.Coordinate{Lat: d.Lat, Lon: d.Lon}
				if _, err := s.service.CurrentWeather(context.Background(), coord); err != nil {
					log.Printf("scheduler: snapshot failed for %s: %v", d.Name, err)
				}
			}(d)
		}
		wg.Wait()
		log.Println("scheduler: completed district snapshot job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
