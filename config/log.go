package config

type Log struct {
	// debug / info / warn / error / dpanic / panic / fatal
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// json（預設）或 console（本機開發用）
	Format string `mapstructure:"FORMAT" json:"format" yaml:"format"`
}
