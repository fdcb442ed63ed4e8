package config

type TelemetryConfig struct {
	Metric struct {
		Enabled bool `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		// histogram buckets（秒），空的話用 prometheus.DefBuckets
		Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
	} `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace struct {
		Enabled     bool   `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		EndpointUrl string `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl"`
		// 0 < ratio < 1 時依 trace id 取樣；其餘值全取
		SampleRatio float64 `yaml:"sampleRatio" mapstructure:"SAMPLE_RATIO" json:"sampleRatio"`
	} `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}
