package store

import (
	"database/sql"
	"log"

	_ "modernc.org/sqlite"

	"github.com/ItUser-Softwares/AgriGrow/internal/agro"
)

// Store persists observations and served recommendations in SQLite using the
// pure Go driver, so deployments need no cgo or external database.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS weather_data (
		id INTEGER PRIMARY KEY,
		latitude REAL,
		longitude REAL,
		temperature REAL,
		humidity REAL,
		rainfall REAL,
		wind_speed REAL,
		date TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS soil_data (
		id INTEGER PRIMARY KEY,
		latitude REAL,
		longitude REAL,
		ph REAL,
		organic_matter REAL,
		nitrogen REAL,
		phosphorus REAL,
		potassium REAL,
		soil_type TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS crop_recommendations (
		id INTEGER PRIMARY KEY,
		latitude REAL,
		longitude REAL,
		crop_name TEXT,
		suitability_score REAL,
		irrigation_need REAL,
		fertilizer_npk TEXT,
		season TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL gives better concurrency for the small background writes this
	// service does.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		log.Println("warning: could not set WAL mode:", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Store{db: db}, nil
}

// SaveWeather appends one weather observation.
func (s *Store) SaveWeather(coord agro.Coordinate, w agro.WeatherData) error {
	_, err := s.db.Exec(
		`INSERT INTO weather_data (latitude, longitude, temperature, humidity, rainfall, wind_speed, date) VALUES (?,?,?,?,?,?,?)`,
		coord.Lat, coord.Lon, w.Temperature, w.Humidity, w.Rainfall, w.WindSpeed, w.Date,
	)
	return err
}

// SaveSoil appends one regional soil profile lookup.
func (s *Store) SaveSoil(coord agro.Coordinate, soil agro.SoilData) error {
	_, err := s.db.Exec(
		`INSERT INTO soil_data (latitude, longitude, ph, organic_matter, nitrogen, phosphorus, potassium, soil_type) VALUES (?,?,?,?,?,?,?,?)`,
		coord.Lat, coord.Lon, soil.PH, soil.OrganicMatter, soil.Nitrogen, soil.Phosphorus, soil.Potassium, soil.SoilType,
	)
	return err
}

// SaveRecommendations appends one row per served recommendation inside a
// single transaction. Planting months are derivable from the crop name and
// are not persisted.
func (s *Store) SaveRecommendations(coord agro.Coordinate, recs []agro.CropRecommendation) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO crop_recommendations (latitude, longitude, crop_name, suitability_score, irrigation_need, fertilizer_npk, season) VALUES (?,?,?,?,?,?,?)`,
	)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		if _, err := stmt.Exec(coord.Lat, coord.Lon, rec.CropName, rec.SuitabilityScore, rec.IrrigationNeed, rec.FertilizerNPK, rec.Season); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// WeatherRow is one persisted weather observation.
type WeatherRow struct {
	ID        int64
	Coord     agro.Coordinate
	Data      agro.WeatherData
	CreatedAt string
}

// SoilRow is one persisted soil lookup.
type SoilRow struct {
	ID        int64
	Coord     agro.Coordinate
	Data      agro.SoilData
	CreatedAt string
}

// RecommendationRow is one persisted crop recommendation.
type RecommendationRow struct {
	ID               int64
	Coord            agro.Coordinate
	CropName         string
	SuitabilityScore float64
	IrrigationNeed   float64
	FertilizerNPK    string
	Season           string
	CreatedAt        string
}

// RecentWeather returns up to limit observations, newest first.
func (s *Store) RecentWeather(limit int) ([]WeatherRow, error) {
	rows, err := s.db.Query(
		`SELECT id, latitude, longitude, temperature, humidity, rainfall, wind_speed, date, created_at FROM weather_data ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WeatherRow, 0)
	for rows.Next() {
		var r WeatherRow
		if err := rows.Scan(&r.ID, &r.Coord.Lat, &r.Coord.Lon, &r.Data.Temperature, &r.Data.Humidity, &r.Data.Rainfall, &r.Data.WindSpeed, &r.Data.Date, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentSoil returns up to limit soil lookups, newest first.
func (s *Store) RecentSoil(limit int) ([]SoilRow, error) {
	rows, err := s.db.Query(
		`SELECT id, latitude, longitude, ph, organic_matter, nitrogen, phosphorus, potassium, soil_type, created_at FROM soil_data ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SoilRow, 0)
	for rows.Next() {
		var r SoilRow
		if err := rows.Scan(&r.ID, &r.Coord.Lat, &r.Coord.Lon, &r.Data.PH, &r.Data.OrganicMatter, &r.Data.Nitrogen, &r.Data.Phosphorus, &r.Data.Potassium, &r.Data.SoilType, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentRecommendations returns up to limit recommendation rows, newest first.
func (s *Store) RecentRecommendations(limit int) ([]RecommendationRow, error) {
	rows, err := s.db.Query(
		`SELECT id, latitude, longitude, crop_name, suitability_score, irrigation_need, fertilizer_npk, season, created_at FROM crop_recommendations ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecommendationRow, 0)
	for rows.Next() {
		var r RecommendationRow
		if err := rows.Scan(&r.ID, &r.Coord.Lat, &r.Coord.Lon, &r.CropName, &r.SuitabilityScore, &r.IrrigationNeed, &r.FertilizerNPK, &r.Season, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
