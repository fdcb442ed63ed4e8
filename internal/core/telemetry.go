package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanStoreHeartbeat      TraceSpanName = "store_heartbeat"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal     MetricName = "requests_total"
	MetricHttpRequestDuration   MetricName = "request_duration_seconds"
	MetricResponseSuccessTotal  MetricName = "response_success_total"
	MetricResponseFailTotal     MetricName = "response_fail_total"
	MetricEmployeeMutationTotal MetricName = "employee_mutations_total"
	MetricRateLimitTotal        MetricName = "rate_limited_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelOp       MetricLabelName = "op"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

// 員工列表查詢
type TraceEmployeeListMeta struct {
	Department  string  `trace:"list.department,omitempty"`
	Search      string  `trace:"list.search,omitempty"`
	Query       string  `trace:"store.query"`
	ResultCount int     `trace:"result.count"`
	Error       *string `trace:"error,omitempty"`
}

// 單筆員工操作（get / create / update / delete）
type TraceEmployeeMeta struct {
	Op         string  `trace:"op"`
	EmployeeID string  `trace:"employee.id,omitempty"`
	Department string  `trace:"employee.department,omitempty"`
	Error      *string `trace:"error,omitempty"`
}

// 文件資料庫操作
type TraceStoreMeta struct {
	Driver     string `trace:"db.system"`
	Database   string `trace:"db.name"`
	Collection string `trace:"db.collection"`
	Op         string `trace:"db.operation"`
	Query      string `trace:"db.query_template,omitempty"`
	Count      int    `trace:"db.result_count,omitempty"`
}

// 供 Redis 限流 Consume 使用
type TraceRateLimitMeta struct {
	Subject   string `trace:"rl.subject"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"` // "consume" / "reset"
}

type TraceRateLimitMiddlewareMeta struct {
	Subject     string `trace:"ratelimit.subject"`
	ConfigLimit int    `trace:"ratelimit.config.limit"`
	Remaining   int    `trace:"ratelimit.remaining"`
	TTLSeconds  int64  `trace:"ratelimit.ttl_sec"`
	Blocked     bool   `trace:"ratelimit.blocked"`
	FailedOpen  bool   `trace:"ratelimit.failed_open"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}
