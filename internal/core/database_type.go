package core

// ─── Database Types ────────────────────────────────────────────────────────────

// DatabaseType defines the type of database
type DatabaseType string

const (
	Mongo  DatabaseType = "mongo"
	Memory DatabaseType = "memory"
	Redis  DatabaseType = "redis"
)

type RedisKey string
type FluentdSubTag string

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "employeehub" // 伺服器名稱
	RedisKeyRateLimit  RedisKey = "ratelimit"   // client IP 限流計數
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
)

// 排程工作名稱
type CronJobName string

const (
	CronJobStoreHeartbeat CronJobName = "store-heartbeat"
)
