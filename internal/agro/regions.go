package agro

// Pakistan bounding box, inclusive on all edges.
const (
	pakistanMinLat = 23.0
	pakistanMaxLat = 37.0
	pakistanMinLon = 60.0
	pakistanMaxLon = 77.0
)

// Region is an agro-climatic zone with a representative soil profile.
// Bounding boxes overlap; resolution order decides ties.
type Region struct {
	Name string
	Soil SoilData

	minLat, maxLat float64
	minLon, maxLon float64
}

func (r Region) contains(c Coordinate) bool {
	return c.Lat >= r.minLat && c.Lat <= r.maxLat &&
		c.Lon >= r.minLon && c.Lon <= r.maxLon
}

// regions in resolution priority order. Punjab wins overlaps and is the
// fallback profile for in-country points outside every box.
var regions = []Region{
	{
		Name:   "Punjab",
		minLat: 30, maxLat: 33, minLon: 70, maxLon: 75,
		Soil: SoilData{PH: 7.2, OrganicMatter: 1.8, Nitrogen: 0.05, Phosphorus: 12.5, Potassium: 180, SoilType: "Alluvial"},
	},
	{
		Name:   "Sindh",
		minLat: 24, maxLat: 28, minLon: 66, maxLon: 71,
		Soil: SoilData{PH: 7.8, OrganicMatter: 1.2, Nitrogen: 0.03, Phosphorus: 8.5, Potassium: 120, SoilType: "Riverine"},
	},
	{
		Name:   "Khyber Pakhtunkhwa",
		minLat: 33, maxLat: 37, minLon: 69, maxLon: 74,
		Soil: SoilData{PH: 6.8, OrganicMatter: 2.1, Nitrogen: 0.06, Phosphorus: 15.0, Potassium: 200, SoilType: "Mountain"},
	},
	{
		Name:   "Balochistan",
		minLat: 24, maxLat: 32, minLon: 60, maxLon: 70,
		Soil: SoilData{PH: 8.1, OrganicMatter: 0.8, Nitrogen: 0.02, Phosphorus: 6.0, Potassium: 90, SoilType: "Arid"},
	},
}

// InPakistan reports whether the point falls inside the national bounding box.
func InPakistan(c Coordinate) bool {
	return c.Lat >= pakistanMinLat && c.Lat <= pakistanMaxLat &&
		c.Lon >= pakistanMinLon && c.Lon <= pakistanMaxLon
}

// ResolveRegion returns the first region whose box contains the point.
// ok is false when no box matches.
func ResolveRegion(c Coordinate) (Region, bool) {
	for _, r := range regions {
		if r.contains(c) {
			return r, true
		}
	}
	return Region{}, false
}

// SoilFor returns the soil profile for a point. Points outside every region
// box fall back to the Punjab profile so the lookup is total within Pakistan.
func SoilFor(c Coordinate) SoilData {
	if r, ok := ResolveRegion(c); ok {
		return r.Soil
	}
	return regions[0].Soil
}

// RegionName returns the display name for a point, or "Unknown" when the
// point matches no region box.
func RegionName(c Coordinate) string {
	if r, ok := ResolveRegion(c); ok {
		return r.Name
	}
	return "Unknown"
}
