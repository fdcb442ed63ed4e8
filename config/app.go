package config

type App struct {
	// 當前開發環境
	Env string `mapstructure:"ENV" json:"env" yaml:"env"`
	// 服務端口
	Port uint32 `mapstructure:"PORT" json:"port" yaml:"port"`
	// 服務名稱
	Name string `mapstructure:"NAME" json:"name" yaml:"name"`
	// 服務版本
	Version string `mapstructure:"VERSION" json:"version" yaml:"version"`
	// 員工 API 額外掛載的前綴（例如 /api），空字串代表只掛在根路徑
	BasePath       string `mapstructure:"BASE_PATH" json:"basePath" yaml:"basePath"`
	SwaggerEnabled bool   `mapstructure:"SWAGGER_ENABLED" json:"swagger_enabled" yaml:"swagger_enabled"`
	PprofEnabled   bool   `mapstructure:"PPROF_ENABLED" json:"pprof_enabled" yaml:"pprof_enabled"`
	// 回應 gzip 壓縮
	CompressionEnabled bool `mapstructure:"COMPRESSION_ENABLED" json:"compression_enabled" yaml:"compression_enabled"`
}
