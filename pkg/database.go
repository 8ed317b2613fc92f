package actar

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

// ConnectToDatabase opens the geometry database. For the sqlite driver
// dbname is the path of the database file.
func ConnectToDatabase(driver string, user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	switch driver {
	case "mysql", "":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
		return sqlx.Connect("mysql", dbURI)
	case "sqlite":
		return sqlx.Connect("sqlite", dbname)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

type pointLimits struct {
	MinPoints int `db:"MinPoints"`
	MaxPoints int `db:"MaxPoints"`
}

// ErrNoGeometry is returned when no geometry row covers the run.
var ErrNoGeometry = errors.New("no pixel geometry for run")

func LoadGeometry(db *sqlx.DB, runNumber int) (Geometry, error) {
	query := "SELECT PitchX, PitchY, PitchZ FROM PixelGeometry WHERE MinRun <= ? and MaxRun >= ?"
	if configuration.Verbosity > 0 {
		logger.Info("Reading pixel geometry from database", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", query, runNumber)
		logger.Info(message, "database")
	}

	var geometry Geometry
	err := db.Get(&geometry, db.Rebind(query), runNumber, runNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return Geometry{}, fmt.Errorf("%w %d", ErrNoGeometry, runNumber)
	}
	if err != nil {
		return Geometry{}, fmt.Errorf("error querying database: %w", err)
	}
	if !geometry.Valid() {
		return Geometry{}, fmt.Errorf("invalid pixel geometry for run %d: %+v", runNumber, geometry)
	}
	return geometry, nil
}

// LoadPointLimits reads the per-run point thresholds. A run without a row
// keeps the given defaults.
func LoadPointLimits(db *sqlx.DB, runNumber int, minPoints int, maxPoints int) (int, int, error) {
	query := "SELECT MinPoints, MaxPoints FROM PointLimits WHERE MinRun <= ? and MaxRun >= ?"
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s (run %d)", query, runNumber)
		logger.Info(message, "database")
	}

	var limits pointLimits
	err := db.Get(&limits, db.Rebind(query), runNumber, runNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return minPoints, maxPoints, nil
	}
	if err != nil {
		return minPoints, maxPoints, fmt.Errorf("error querying database: %w", err)
	}
	return limits.MinPoints, limits.MaxPoints, nil
}

// LoadDatabase fills the geometry and point limits of config from the
// database rows valid for config.RunNumber.
func LoadDatabase(dbConn *sqlx.DB, config Configuration) (Configuration, error) {
	geometry, err := LoadGeometry(dbConn, config.RunNumber)
	if err != nil {
		errMessage := fmt.Errorf("error getting pixel geometry from database: %w", err)
		logger.Error(errMessage.Error())
		return config, errMessage
	}
	config.PitchX, config.PitchY, config.PitchZ = geometry.PitchX, geometry.PitchY, geometry.PitchZ

	config.MinPoints, config.MaxPoints, err = LoadPointLimits(dbConn, config.RunNumber, config.MinPoints, config.MaxPoints)
	if err != nil {
		errMessage := fmt.Errorf("error getting point limits from database: %w", err)
		logger.Error(errMessage.Error())
		return config, errMessage
	}
	return config, nil
}
