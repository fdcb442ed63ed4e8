package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	AuthMechanismNone = "none"

	LogFormatJSON    = "json"
	LogFormatConsole = "console"

	// Entra ID 對 Azure 托管 MongoDB 相容 API 的 audience
	DefaultAzureTokenResource = "https://ossrdbms-aad.database.windows.net"
)

// EnvAliases 讓舊部署（Function App 設定）沿用原本的環境變數名稱
var EnvAliases = map[string][]string{
	"STORE__ENDPOINT":          {"CosmosDbEndpoint"},
	"STORE__CONNECTION_STRING": {"CosmosDbConnectionString"},
	"STORE__DATABASE_NAME":     {"CosmosDbDatabaseName"},
	"STORE__COLLECTION_NAME":   {"CosmosDbContainerName"},
}

// ApplyDefaults 在 viper unmarshal 之後補上預設值
func (c *Configuration) ApplyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.Name == "" {
		c.App.Name = "employeehub"
	}
	if c.App.Version == "" {
		c.App.Version = "1.0.0"
	}
	if c.App.BasePath == "" {
		c.App.BasePath = "/api"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
	if c.Log.Format == "" {
		c.Log.Format = LogFormatJSON
	}

	if c.Store.Driver == "" {
		c.Store.Driver = StoreDriverMongo
	}
	c.Store.Driver = strings.ToLower(c.Store.Driver)
	if c.Store.AuthMechanism == "" {
		c.Store.AuthMechanism = "MONGODB-OIDC"
	}
	if c.Store.AuthEnvironment == "" {
		c.Store.AuthEnvironment = "azure"
	}
	if c.Store.TokenResource == "" && strings.EqualFold(c.Store.AuthEnvironment, "azure") {
		c.Store.TokenResource = DefaultAzureTokenResource
	}
	if c.Store.DatabaseName == "" {
		c.Store.DatabaseName = "employeedb"
	}
	if c.Store.CollectionName == "" {
		c.Store.CollectionName = "employees"
	}
	if c.Store.ConnectTimeout <= 0 {
		c.Store.ConnectTimeout = 10000
	}

	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = 120
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = 60
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Cron.HeartbeatSpec == "" {
		c.Cron.HeartbeatSpec = "*/30 * * * * *"
	}
	if c.Fluentd.Port == 0 {
		c.Fluentd.Port = 24224
	}
}

func (c Configuration) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.App),
		validation.Field(&c.Store),
		validation.Field(&c.Log),
		validation.Field(&c.RateLimit),
	)
}

func (a App) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Port, validation.Required, validation.Max(uint32(65535))),
		validation.Field(&a.Name, validation.Required),
	)
}

func (s Store) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Driver, validation.Required, validation.In(StoreDriverMongo, StoreDriverMemory)),
		validation.Field(&s.DatabaseName, validation.Required),
		validation.Field(&s.CollectionName, validation.Required),
	)
}

func (l Log) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error", "dpanic", "panic", "fatal")),
		validation.Field(&l.Format, validation.In(LogFormatJSON, LogFormatConsole)),
	)
}

func (r RateLimit) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit, validation.Min(1)),
		validation.Field(&r.WindowSeconds, validation.Min(int64(1))),
	)
}
