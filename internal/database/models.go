package database

import "time"

// AnalysisRun is the stored summary of one analysis run. History rows are
// written after a run completes and are never read on the analysis path.
type AnalysisRun struct {
	ID   uint   `gorm:"primaryKey"`
	UUID string `gorm:"uniqueIndex;size:36"`

	Product     string `gorm:"size:64;index"`
	Environment string `gorm:"size:32;index"`
	DateArg     string `gorm:"size:32"` // dd-mm-yy or dd-mm-yy:dd-mm-yy as given

	TotalAlarms          int
	AnalyzableAlarms     int
	IgnoredAlarms        int
	OncallTotal          int
	OncallInReperibilita int

	CreatedAt time.Time

	AlarmCounts []AlarmCount `gorm:"foreignKey:AnalysisRunID"`
}

// AlarmCount is the per-alarm-name occurrence count of one run.
type AlarmCount struct {
	ID            uint   `gorm:"primaryKey"`
	AnalysisRunID uint   `gorm:"index"`
	AlarmName     string `gorm:"size:255"`
	Count         int
}
