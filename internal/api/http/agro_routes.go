package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

const maxBatchLocations = 10

// RegisterAgroRoutes wires the farm-advisory handlers into the Fiber app.
func RegisterAgroRoutes(app *fiber.App, service *agro.AnalysisService) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/:lat/:lon", func(c *fiber.Ctx) error {
		coord, err := parseCoordParams(c)
		if err != nil {
			return err
		}

		w, err := service.CurrentWeather(c.UserContext(), coord)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		return c.JSON(w)
	})

	v1.Get("/soil/:lat/:lon", func(c *fiber.Ctx) error {
		coord, err := parseCoordParams(c)
		if err != nil {
			return err
		}
		return c.JSON(service.Soil(coord))
	})

	v1.Get("/crops/:lat/:lon", func(c *fiber.Ctx) error {
		coord, err := parseCoordParams(c)
		if err != nil {
			return err
		}

		recs, err := service.Crops(c.UserContext(), coord)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		return c.JSON(fiber.Map{
			"location":        fiber.Map{"latitude": coord.Lat, "longitude": coord.Lon},
			"recommendations": recs,
		})
	})

	v1.Get("/analysis/:lat/:lon", func(c *fiber.Ctx) error {
		coord, err := parseCoordParams(c)
		if err != nil {
			return err
		}

		analysis, err := service.Analyze(c.UserContext(), coord)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}
		return c.JSON(analysis)
	})

	v1.Post("/batch-analysis", func(c *fiber.Ctx) error {
		var locs []locationRequest
		if err := c.BodyParser(&locs); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		// Size check runs before any fetch is issued.
		if len(locs) > maxBatchLocations {
			return fiber.NewError(fiber.StatusBadRequest, "maximum 10 locations per request")
		}

		coords := make([]agro.Coordinate, 0, len(locs))
		for _, loc := range locs {
			coords = append(coords, agro.Coordinate{Lat: loc.Latitude, Lon: loc.Longitude})
		}

		results := service.BatchAnalyze(c.UserContext(), coords)
		return c.JSON(fiber.Map{"results": results})
	})

	v1.Get("/districts", func(c *fiber.Ctx) error {
		return c.JSON(agro.Districts())
	})
}

// locationRequest is one point in a batch-analysis request body.
type locationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// parseCoordParams reads the :lat/:lon path params and enforces the Pakistan
// bounding box. The returned error is ready to hand back to Fiber.
func parseCoordParams(c *fiber.Ctx) (agro.Coordinate, error) {
	lat, err := strconv.ParseFloat(c.Params("lat"), 64)
	if err != nil {
		return agro.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "invalid latitude")
	}
	lon, err := strconv.ParseFloat(c.Params("lon"), 64)
	if err != nil {
		return agro.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "invalid longitude")
	}

	coord := agro.Coordinate{Lat: lat, Lon: lon}
	if !agro.InPakistan(coord) {
		return agro.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "coordinates outside Pakistan")
	}
	return coord, nil
}
