package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alarmscope/alarmscope/internal/alarms"
)

// SaveRun persists the summary of a merged analysis result, including
// per-alarm-name counts, in one transaction. Returns the stored row.
func SaveRun(db *gorm.DB, product, environment, dateArg string, result *alarms.AnalysisResult) (*AnalysisRun, error) {
	run := &AnalysisRun{
		UUID:                 uuid.New().String(),
		Product:              product,
		Environment:          environment,
		DateArg:              dateArg,
		TotalAlarms:          result.TotalAlarms,
		AnalyzableAlarms:     result.AnalyzableAlarms,
		IgnoredAlarms:        result.IgnoredAlarms,
		OncallTotal:          result.OncallTotal,
		OncallInReperibilita: result.OncallInReperibilita,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		for _, name := range result.AlarmNames {
			count := &AlarmCount{
				AnalysisRunID: run.ID,
				AlarmName:     name,
				Count:         len(result.Stats[name]),
			}
			if err := tx.Create(count).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RecentRuns lists the most recent stored runs, newest first, optionally
// filtered by product.
func RecentRuns(db *gorm.DB, product string, limit int) ([]AnalysisRun, error) {
	q := db.Preload("AlarmCounts").Order("created_at DESC").Limit(limit)
	if product != "" {
		q = q.Where("product = ?", product)
	}
	var runs []AnalysisRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
