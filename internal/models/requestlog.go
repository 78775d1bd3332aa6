package models

import "time"

// RequestLog is one handled request, persisted for offline analysis.
type RequestLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Timestamp      time.Time `gorm:"index" json:"timestamp"`
	RequestID      string    `json:"request_id"`
	Method         string    `json:"method"`
	Path           string    `gorm:"index" json:"path"`
	StatusCode     int       `gorm:"index" json:"status_code"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ClientKey      string    `gorm:"index" json:"client_key"`
	IPAddress      string    `json:"ip_address"`
	UserAgent      string    `json:"user_agent"`
}

func (RequestLog) TableName() string {
	return "request_logs"
}
