package agro

// Coordinate is a WGS84 point. Latitude/longitude are kept together because
// every operation in this service is keyed by location.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Period is the wire form of an observation window, inclusive calendar dates.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Status is embedded in every source record. OK reports whether the upstream
// fetch succeeded; Err carries the reason and never reaches the wire.
type Status struct {
	OK  bool  `json:"raw_ok"`
	Err error `json:"-"`
}

// WeatherData is a current-conditions reading from Open-Meteo.
// Missing upstream fields default to zero values.
type WeatherData struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Rainfall    float64 `json:"rainfall"`
	WindSpeed   float64 `json:"wind_speed"`
	Date        string  `json:"date"`
}

// SoilData is a regional soil profile.
type SoilData struct {
	PH            float64 `json:"ph"`
	OrganicMatter float64 `json:"organic_matter"`
	Nitrogen      float64 `json:"nitrogen"`
	Phosphorus    float64 `json:"phosphorus"`
	Potassium     float64 `json:"potassium"`
	SoilType      string  `json:"soil_type"`
}

// CropRecommendation is one scored crop for a location.
type CropRecommendation struct {
	CropName         string   `json:"crop_name"`
	SuitabilityScore float64  `json:"suitability_score"`
	IrrigationNeed   float64  `json:"irrigation_need"`
	FertilizerNPK    string   `json:"fertilizer_npk"`
	Season           string   `json:"season"`
	PlantingMonths   []string `json:"planting_months"`
}

// AnalysisLocation describes the resolved place of an analysis.
type AnalysisLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
}

// Analysis is the combined weather/soil/crop view for one location.
type Analysis struct {
	Location        AnalysisLocation     `json:"location"`
	Weather         WeatherData          `json:"weather"`
	Soil            SoilData             `json:"soil"`
	Recommendations []CropRecommendation `json:"crop_recommendations"`
}

// DailyClimate is one day of archived climate data. Pointer fields are nil
// when the upstream series had no value for that day.
type DailyClimate struct {
	Date            string   `json:"date"`
	PrecipitationMM *float64 `json:"precipitation_mm"`
	ET0MM           *float64 `json:"et0_mm"`
	TMeanC          *float64 `json:"t_mean_c"`
}

// ClimateAggregates summarizes a climate archive window.
type ClimateAggregates struct {
	TotalPrecipMM *float64 `json:"total_precip_mm"`
	TotalET0MM    *float64 `json:"total_et0_mm"`
	AvgTMeanC     *float64 `json:"avg_t_mean_c"`
	Days          int      `json:"days"`
}

// ClimateArchive is the normalized record from the Open-Meteo ERA5 archive.
type ClimateArchive struct {
	Source     string            `json:"source"`
	Period     Period            `json:"period"`
	Daily      []DailyClimate    `json:"daily"`
	Aggregates ClimateAggregates `json:"aggregates"`
	Status
}

// SoilSnapshot is the most recent soil observation in a window. Time is the
// newest hourly timestamp; the readings are the newest non-null values, which
// may come from an earlier hour.
type SoilSnapshot struct {
	Time             *string  `json:"time"`
	SoilMoistureM3M3 *float64 `json:"soil_moisture_m3m3"`
	SoilTempC        *float64 `json:"soil_temp_c"`
}

// SoilAggregates summarizes hourly topsoil series over a window.
type SoilAggregates struct {
	MeanSoilMoistureM3M3 *float64 `json:"mean_soil_moisture_m3m3"`
	MeanSoilTempC        *float64 `json:"mean_soil_temp_c"`
	ObsCount             int      `json:"obs_count"`
}

// SoilArchive is the normalized record from the Open-Meteo soil archive.
type SoilArchive struct {
	Source     string         `json:"source"`
	Period     Period         `json:"period"`
	Latest     SoilSnapshot   `json:"latest"`
	Aggregates SoilAggregates `json:"aggregates"`
	Status
}

// PowerAggregates summarizes NASA POWER daily series over a window.
type PowerAggregates struct {
	AvgT2MC          *float64 `json:"avg_t2m_c"`
	AvgRH2MPct       *float64 `json:"avg_rh2m_pct"`
	TotalPrecipMM    *float64 `json:"total_precip_mm"`
	AvgSolarKWhM2Day *float64 `json:"avg_solar_kwh_m2_day"`
	Days             int      `json:"days"`
}

// PowerSummary is the normalized record from NASA POWER.
type PowerSummary struct {
	Source     string          `json:"source"`
	Period     Period          `json:"period"`
	Aggregates PowerAggregates `json:"aggregates"`
	Status
}

// SoilLayer holds SoilGrids mean values for one depth band. Texture fractions
// (clay/sand/silt) are percentages; a nil field was absent upstream.
type SoilLayer struct {
	Depth string   `json:"depth"`
	PHH2O *float64 `json:"phh2o,omitempty"`
	OCD   *float64 `json:"ocd,omitempty"`
	CEC   *float64 `json:"cec,omitempty"`
	Clay  *float64 `json:"clay,omitempty"`
	Sand  *float64 `json:"sand,omitempty"`
	Silt  *float64 `json:"silt,omitempty"`
	BDOD  *float64 `json:"bdod,omitempty"`
}

// SoilGridsReport is the normalized record from ISRIC SoilGrids v2.
type SoilGridsReport struct {
	Source   string      `json:"source"`
	Location Coordinate  `json:"location"`
	Layers   []SoilLayer `json:"layers"`
	Status
}

// ClimateSummary is the merged climate block of a feature record. Rain, ET0
// and temperature come from the climate archive; humidity and solar come from
// NASA POWER. A nil field means the contributing source failed.
type ClimateSummary struct {
	TotalRainMM      *float64 `json:"total_rain_mm"`
	TotalET0MM       *float64 `json:"total_et0_mm"`
	AvgTempC         *float64 `json:"avg_temp_c"`
	AvgRHPct         *float64 `json:"avg_rh_pct"`
	AvgSolarKWhM2Day *float64 `json:"avg_solar_kwh_m2_day"`
}

// SoilState is the merged soil-moisture block of a feature record.
type SoilState struct {
	LatestSoilMoistureM3M3 *float64 `json:"latest_soil_moisture_m3m3"`
	LatestSoilTempC        *float64 `json:"latest_soil_temp_c"`
	MeanSoilMoistureM3M3   *float64 `json:"mean_soil_moisture_m3m3"`
}

// FeatureRecord is the cross-source merged view for one location and window.
type FeatureRecord struct {
	Location       Coordinate      `json:"location"`
	Period         Period          `json:"period"`
	Climate        ClimateSummary  `json:"climate"`
	SoilState      SoilState       `json:"soil_state"`
	SoilProperties []SoilLayer     `json:"soil_properties"`
	SourcesOK      map[string]bool `json:"sources_ok"`
}

// SourceRecords carries the per-source records alongside the merged features
// so callers can audit exactly what each upstream contributed.
type SourceRecords struct {
	OpenMeteoArchive ClimateArchive  `json:"open_meteo_archive"`
	OpenMeteoSoil    SoilArchive     `json:"open_meteo_soil"`
	NASAPower        PowerSummary    `json:"nasa_power"`
	SoilGrids        SoilGridsReport `json:"soilgrids"`
}

// AggregateResult is the full response of an aggregation run.
type AggregateResult struct {
	Features FeatureRecord `json:"features"`
	Sources  SourceRecords `json:"sources"`
}
