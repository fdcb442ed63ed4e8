package config

// RateLimit 以 client IP 為單位的固定視窗限流（需要 Redis）
type RateLimit struct {
	Enabled bool `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	// 視窗內允許的請求數
	Limit int `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
	// 視窗秒數
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"windowSeconds" yaml:"windowSeconds"`
}
