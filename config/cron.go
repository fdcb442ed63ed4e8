package config

type Cron struct {
	// 文件資料庫心跳檢查排程（含秒）
	HeartbeatSpec string `mapstructure:"HEARTBEAT_SPEC" json:"heartbeatSpec" yaml:"heartbeatSpec"`
}
