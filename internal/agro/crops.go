package agro

import (
	"math"
	"sort"
)

// CropProfile describes a crop's agronomic requirements.
type CropProfile struct {
	Name           string
	MinTempC       float64
	MaxTempC       float64
	MinPH          float64
	MaxPH          float64
	Season         string
	PlantingMonths []string
	WaterNeedMM    float64
	NPK            string
}

// cropTable in fixed order; score ties between crops resolve to this order.
var cropTable = []CropProfile{
	{
		Name:     "Wheat",
		MinTempC: 15, MaxTempC: 25,
		MinPH: 6.0, MaxPH: 7.5,
		Season:         "Rabi",
		PlantingMonths: []string{"November", "December"},
		WaterNeedMM:    450,
		NPK:            "120-60-60",
	},
	{
		Name:     "Rice",
		MinTempC: 20, MaxTempC: 35,
		MinPH: 5.5, MaxPH: 7.0,
		Season:         "Kharif",
		PlantingMonths: []string{"May", "June", "July"},
		WaterNeedMM:    1200,
		NPK:            "120-90-60",
	},
	{
		Name:     "Cotton",
		MinTempC: 21, MaxTempC: 30,
		MinPH: 5.8, MaxPH: 8.0,
		Season:         "Kharif",
		PlantingMonths: []string{"April", "May"},
		WaterNeedMM:    800,
		NPK:            "150-75-75",
	},
	{
		Name:     "Sugarcane",
		MinTempC: 20, MaxTempC: 35,
		MinPH: 6.0, MaxPH: 7.5,
		Season:         "Kharif",
		PlantingMonths: []string{"February", "March", "April"},
		WaterNeedMM:    1500,
		NPK:            "200-100-100",
	},
	{
		Name:     "Maize",
		MinTempC: 15, MaxTempC: 30,
		MinPH: 6.0, MaxPH: 7.0,
		Season:         "Kharif",
		PlantingMonths: []string{"June", "July"},
		WaterNeedMM:    600,
		NPK:            "120-80-60",
	},
}

// rangeScore is 10 inside [min,max] and decays linearly with the distance to
// the nearest bound, floored at 0.
func rangeScore(v, min, max, slope float64) float64 {
	if v >= min && v <= max {
		return 10
	}
	var d float64
	if v < min {
		d = min - v
	} else {
		d = v - max
	}
	return math.Max(0, 10-slope*d)
}

func temperatureScore(tempC float64, p CropProfile) float64 {
	return rangeScore(tempC, p.MinTempC, p.MaxTempC, 0.5)
}

// phScore penalizes out-of-range pH four times harder than temperature per
// unit of distance.
func phScore(ph float64, p CropProfile) float64 {
	return rangeScore(ph, p.MinPH, p.MaxPH, 2)
}

// Recommend scores every known crop against current temperature and regional
// soil pH and returns at most the top three ordered by score descending. The
// 5.0 cutoff reads the raw mean; only surviving scores are rounded to one
// decimal, ties to even.
func Recommend(weather WeatherData, soil SoilData) []CropRecommendation {
	recs := make([]CropRecommendation, 0, len(cropTable))
	for _, crop := range cropTable {
		score := (temperatureScore(weather.Temperature, crop) + phScore(soil.PH, crop)) / 2
		if score < 5.0 {
			continue
		}
		recs = append(recs, CropRecommendation{
			CropName:         crop.Name,
			SuitabilityScore: math.RoundToEven(score*10) / 10,
			IrrigationNeed:   crop.WaterNeedMM,
			FertilizerNPK:    crop.NPK,
			Season:           crop.Season,
			PlantingMonths:   crop.PlantingMonths,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SuitabilityScore > recs[j].SuitabilityScore
	})

	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}
