package database

import (
	"time"

	"gorm.io/gorm"
)

// QueryLog records one statistics query served over HTTP. Results are
// never stored, only what was asked and how it went.
type QueryLog struct {
	gorm.Model
	RequestID    string    `json:"request_id" gorm:"index"`
	Endpoint     string    `json:"endpoint"`
	Params       string    `json:"params" gorm:"type:text"`
	Success      bool      `json:"success"`
	StatusCode   int       `json:"status_code"`
	ErrorMessage string    `json:"error_message"`
	QueryTime    time.Time `json:"query_time"`
	DurationMs   int64     `json:"duration_ms"`
	IPAddress    string    `json:"ip_address"`
}

func (QueryLog) TableName() string {
	return "query_logs"
}
