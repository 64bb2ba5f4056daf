package agro

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Window is an inclusive observation window ending now. Both bounds are UTC.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds the window covering the last days calendar days, anchored
// at the clock's current UTC time.
func NewWindow(clock clockwork.Clock, days int) Window {
	end := clock.Now().UTC()
	return Window{
		Start: end.AddDate(0, 0, -days),
		End:   end,
	}
}

// Period returns the wire form with ISO calendar dates.
func (w Window) Period() Period {
	return Period{
		Start: w.Start.Format("2006-01-02"),
		End:   w.End.Format("2006-01-02"),
	}
}

// CompactStart returns the start date as yyyymmdd, the format NASA POWER expects.
func (w Window) CompactStart() string {
	return w.Start.Format("20060102")
}

// CompactEnd returns the end date as yyyymmdd.
func (w Window) CompactEnd() string {
	return w.End.Format("20060102")
}
