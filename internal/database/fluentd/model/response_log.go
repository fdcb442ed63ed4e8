package model

type ResponseLog struct {
	// 對應鍵
	RequestID  string  `bson:"request_id" json:"request_id"`
	Path       string  `bson:"path" json:"path"`
	StatusCode int     `bson:"status_code" json:"status_code"`
	ErrorCode  string  `bson:"error_code,omitempty" json:"error_code,omitempty"`
	Error      string  `bson:"error,omitempty" json:"error,omitempty"`
	LatencyMs  float64 `bson:"latency_ms" json:"latency_ms"`
	Version    string  `bson:"version,omitempty" json:"version,omitempty"`
	ResponseTS string  `bson:"response_ts" json:"response_ts"`
	LoggedAt   string  `bson:"logged_at" json:"logged_at"`
}
