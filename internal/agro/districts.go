package agro

// District is a major agricultural district with a representative coordinate.
type District struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// provinceOrder fixes iteration order for flattened listings.
var provinceOrder = []string{"Punjab", "Sindh", "KPK", "Balochistan"}

var districts = map[string][]District{
	"Punjab": {
		{Name: "Lahore", Lat: 31.5804, Lon: 74.3587},
		{Name: "Faisalabad", Lat: 31.4504, Lon: 73.1350},
		{Name: "Multan", Lat: 30.1575, Lon: 71.5249},
		{Name: "Rawalpindi", Lat: 33.5651, Lon: 73.0169},
	},
	"Sindh": {
		{Name: "Karachi", Lat: 24.8607, Lon: 67.0011},
		{Name: "Hyderabad", Lat: 25.3960, Lon: 68.3578},
		{Name: "Sukkur", Lat: 27.7202, Lon: 68.8574},
	},
	"KPK": {
		{Name: "Peshawar", Lat: 34.0151, Lon: 71.5249},
		{Name: "Mardan", Lat: 34.1989, Lon: 72.0408},
	},
	"Balochistan": {
		{Name: "Quetta", Lat: 30.1798, Lon: 66.9750},
	},
}

// Districts returns the gazetteer keyed by province. Callers must not mutate
// the returned map.
func Districts() map[string][]District {
	return districts
}

// AllDistricts returns every district in a stable province-then-list order,
// used by the snapshot scheduler.
func AllDistricts() []District {
	var out []District
	for _, province := range provinceOrder {
		out = append(out, districts[province]...)
	}
	return out
}
