package config

// Store 文件資料庫設定
type Store struct {
	// mongo / memory
	Driver string `mapstructure:"DRIVER" json:"driver" yaml:"driver"`
	// 不含帳密的連線位址，搭配 workload identity 使用
	Endpoint string `mapstructure:"ENDPOINT" json:"endpoint" yaml:"endpoint"`
	// 預先共享的連線字串（identity 無法使用時的備援）
	ConnectionString string `mapstructure:"CONNECTION_STRING" json:"-" yaml:"connectionString"`
	// MONGODB-OIDC / MONGODB-AWS / none
	AuthMechanism   string `mapstructure:"AUTH_MECHANISM" json:"authMechanism" yaml:"authMechanism"`
	AuthEnvironment string `mapstructure:"AUTH_ENVIRONMENT" json:"authEnvironment" yaml:"authEnvironment"`
	TokenResource   string `mapstructure:"TOKEN_RESOURCE" json:"tokenResource" yaml:"tokenResource"`
	Options         string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	DatabaseName    string `mapstructure:"DATABASE_NAME" json:"databaseName" yaml:"databaseName"`
	CollectionName  string `mapstructure:"COLLECTION_NAME" json:"collectionName" yaml:"collectionName"`
	// 毫秒
	ConnectTimeout int64 `mapstructure:"CONNECT_TIMEOUT" json:"connectTimeout" yaml:"connectTimeout"`
}
