package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

var validate = validator.New()

// RegisterAggregateRoutes wires the multi-source aggregation handlers into
// the Fiber app.
func RegisterAggregateRoutes(app *fiber.App, service *agro.AggregateService) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":       true,
			"time_utc": service.Now().UTC().Format(time.RFC3339),
		})
	})

	app.Get("/aggregate", func(c *fiber.Ctx) error {
		q, err := parseAggregateQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord := agro.Coordinate{Lat: q.Lat, Lon: q.Lon}
		return c.JSON(service.Aggregate(c.UserContext(), coord, q.Days))
	})
}

// aggregateQuery holds the /aggregate query parameters.
type aggregateQuery struct {
	Lat  float64 `query:"lat" validate:"min=-90,max=90"`
	Lon  float64 `query:"lon" validate:"min=-180,max=180"`
	Days int     `query:"days" validate:"min=1,max=60"`
}

func parseAggregateQuery(c *fiber.Ctx) (aggregateQuery, error) {
	var q aggregateQuery

	if c.Query("lat") == "" || c.Query("lon") == "" {
		return q, errors.New("lat and lon query parameters are required")
	}
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	if c.Query("days") == "" {
		q.Days = 7
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
