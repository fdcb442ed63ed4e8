package middleware

import (
	"strings"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTraceEntry,
	NewLogger,
	NewCors,
	NewRateLimit,
	NewRecovery,
	NewResponse,
)

const contextRequestTimeKey = "requestDuration"

// 維運用路徑：不做 tracing / request log
func isOperationalPath(endpoint string) bool {
	return strings.HasPrefix(endpoint, "/swagger") ||
		strings.HasPrefix(endpoint, "/metrics") ||
		strings.HasPrefix(endpoint, "/version") ||
		strings.HasPrefix(endpoint, "/health/") ||
		strings.HasPrefix(endpoint, "/debug/pprof")
}
