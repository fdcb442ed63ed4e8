package repository

import (
	"context"
	"testing"

	"employeehub/config"
	"employeehub/internal/core"
	"employeehub/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	tags    []string
	records []map[string]any
}

func (r *recordingClient) Post(ctx context.Context, tag string, rec map[string]any) error {
	r.tags = append(r.tags, tag)
	r.records = append(r.records, rec)
	return nil
}

func (r *recordingClient) Close() error { return nil }

func TestLogRepository(t *testing.T) {
	rc := &recordingClient{}
	conf := &config.Configuration{App: config.App{Version: "2.1.0"}}
	repo := NewLogRepository(conf, rc)

	require.NoError(t, repo.LogRequest(context.Background(), model.RequestLog{
		RequestID: "req-1",
		Path:      "/employees",
		Method:    "GET",
	}))
	require.NoError(t, repo.LogResponse(context.Background(), model.ResponseLog{
		RequestID:  "req-1",
		StatusCode: 404,
		Error:      "Employee not found",
	}))

	require.Len(t, rc.records, 2)
	assert.Equal(t, []string{string(core.FluentdRequest), string(core.FluentdResponse)}, rc.tags)
	assert.Equal(t, "req-1", rc.records[0]["request_id"])
	assert.Equal(t, "2.1.0", rc.records[0]["version"])
	assert.NotEmpty(t, rc.records[0]["logged_at"])
	assert.Equal(t, float64(404), rc.records[1]["status_code"])
	assert.Equal(t, "Employee not found", rc.records[1]["error"])
}
