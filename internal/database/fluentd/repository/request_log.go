package repository

import (
	"context"
	"encoding/json"
	"time"

	"employeehub/config"
	"employeehub/internal/core"
	"employeehub/internal/database/client"
	"employeehub/internal/database/fluentd/model"
)

const loggedAtLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 統一負責發送 Request/Response Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = time.Now().UTC().Format(loggedAtLayout)
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = time.Now().UTC().Format(loggedAtLayout)
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

// struct → map，沿用 json tag 當欄位名稱
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := json.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}
