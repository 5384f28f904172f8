package database

import (
	"errors"
	"math"
	"os"
	"time"

	database "github.com/EschauzierRob/BitBetMatic/database/models"
	"github.com/EschauzierRob/BitBetMatic/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{
		DB: db,
	}

	err = dbs.DB.AutoMigrate(&database.Candle{}, &models.IndicatorThresholds{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

func init() {
	cwd, _ := os.Getwd()
	_ = godotenv.Load(cwd + "/conf.env")
}

// GetCandles returns the stored candles for the market within [start, end],
// ascending by date.
func (dbs *DBService) GetCandles(market string, start time.Time, end time.Time) ([]models.Quote, error) {
	var dbCandles []database.Candle
	result := dbs.DB.
		Where("market = ? AND date >= ? AND date <= ?", market, start, end).
		Order("date asc").
		Find(&dbCandles)
	if result.Error != nil {
		return nil, result.Error
	}

	quotes := make([]models.Quote, 0, len(dbCandles))
	for _, c := range dbCandles {
		quotes = append(quotes, models.Quote{
			Date:   c.Date,
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		})
	}
	return quotes, nil
}

// AddCandles upserts the quotes keyed by (market, date).
func (dbs *DBService) AddCandles(market string, quotes []models.Quote) error {
	for _, q := range quotes {
		dbCandle := database.Candle{
			Market: market,
			Date:   q.Date,
			Open:   q.Open,
			High:   q.High,
			Low:    q.Low,
			Close:  q.Close,
			Volume: q.Volume,
		}

		result := dbs.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "market"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
		}).Create(&dbCandle)
		if result.Error != nil {
			return result.Error
		}
	}
	return nil
}

// GetLatestThresholds returns the most recently stored threshold set for the
// (strategy, market) pair, or nil when none has been stored yet.
func (dbs *DBService) GetLatestThresholds(strategy string, market string) (*models.IndicatorThresholds, error) {
	var thresholds models.IndicatorThresholds
	result := dbs.DB.
		Where("strategy = ? AND market = ?", strategy, market).
		Order("created_at desc").
		First(&thresholds)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &thresholds, nil
}

// GetLatestDecayedThresholds reads the latest thresholds with the persisted
// highscore decayed by its age, so stale winners lose priority over time.
func (dbs *DBService) GetLatestDecayedThresholds(strategy string, market string, decayRate float64) (*models.IndicatorThresholds, error) {
	thresholds, err := dbs.GetLatestThresholds(strategy, market)
	if err != nil || thresholds == nil {
		return thresholds, err
	}

	ageInDays := time.Since(thresholds.CreatedAt).Hours() / 24
	thresholds.Highscore *= math.Exp(-decayRate * ageInDays)
	return thresholds, nil
}

func (dbs *DBService) InsertThresholds(thresholds *models.IndicatorThresholds) error {
	return dbs.DB.Create(thresholds).Error
}
