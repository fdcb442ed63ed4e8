package config

type Configuration struct {
	App       App             `mapstructure:"APP" json:"app" yaml:"app"`
	Store     Store           `mapstructure:"STORE" json:"store" yaml:"store"`
	Redis     Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	RateLimit RateLimit       `mapstructure:"RATE_LIMIT" json:"rateLimit" yaml:"rateLimit"`
	Log       Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	Cron      Cron            `mapstructure:"CRON" json:"cron" yaml:"cron"`
	Telemetry TelemetryConfig `mapstructure:"TELEMETRY" yaml:"telemetry"`
	Fluentd   Fluentd         `mapstructure:"FLUENTD" yaml:"fluentd"`
}
