package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"employeehub/internal/dto"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// SampleEmployees 部署後預設匯入的員工
var SampleEmployees = []dto.CreateEmployeeRequest{
	{FirstName: "John", LastName: "Doe", Email: "john.doe@company.com", Department: "Engineering", Position: "Senior Developer"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@company.com", Department: "HR", Position: "HR Manager"},
	{FirstName: "Bob", LastName: "Johnson", Email: "bob.j@company.com", Department: "Engineering", Position: "DevOps Engineer"},
	{FirstName: "Alice", LastName: "Williams", Email: "alice.w@company.com", Department: "Finance", Position: "Financial Analyst"},
	{FirstName: "Charlie", LastName: "Brown", Email: "charlie.b@company.com", Department: "Sales", Position: "Sales Manager"},
}

const DefaultSeedWait = 60 * time.Second

var ErrServiceUnhealthy = errors.New("service did not become healthy")

type SeedOptions struct {
	BaseURL string
	File    string
	Wait    time.Duration
}

// SeedResult 各筆匯入結果
type SeedResult struct {
	Created int
	Failed  int
}

type SeedHandler struct {
	logger *zap.Logger
	client *http.Client
}

func NewSeedHandler(logger *zap.Logger) *SeedHandler {
	return &SeedHandler{
		logger: logger,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Seed 等服務 /health 回 200 後逐筆 POST /employees；單筆失敗只記 warning
func (handler *SeedHandler) Seed(ctx context.Context, opts SeedOptions) (SeedResult, error) {
	var result SeedResult
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	employees := SampleEmployees
	if opts.File != "" {
		loaded, err := loadEmployees(opts.File)
		if err != nil {
			return result, err
		}
		employees = loaded
	}

	if err := handler.waitHealthy(ctx, baseURL, opts.Wait); err != nil {
		return result, err
	}

	for _, employee := range employees {
		name := employee.FirstName + " " + employee.LastName
		id, err := handler.create(ctx, baseURL, employee)
		if err != nil {
			result.Failed++
			handler.logger.Warn("seed employee failed", zap.String("name", name), zap.Error(err))
			continue
		}
		result.Created++
		handler.logger.Info("seed employee created", zap.String("name", name), zap.String("id", id))
	}
	return result, nil
}

func (handler *SeedHandler) waitHealthy(ctx context.Context, baseURL string, wait time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = wait
	if wait <= 0 {
		policy.MaxElapsedTime = DefaultSeedWait
	}

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := handler.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("health returned %d", resp.StatusCode)
		}
		return nil
	}
	notify := func(err error, next time.Duration) {
		handler.logger.Info("waiting for service", zap.String("url", baseURL), zap.Duration("retryIn", next), zap.Error(err))
	}
	if err := backoff.RetryNotify(operation, backoff.WithContext(policy, ctx), notify); err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnhealthy, err)
	}
	return nil
}

func (handler *SeedHandler) create(ctx context.Context, baseURL string, employee dto.CreateEmployeeRequest) (string, error) {
	body, err := json.Marshal(employee)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/employees", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := handler.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var failure struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, failure.Error)
	}
	var created dto.EmployeeResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", err
	}
	return created.ID, nil
}

func loadEmployees(path string) ([]dto.CreateEmployeeRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var employees []dto.CreateEmployeeRequest
	if err := json.Unmarshal(raw, &employees); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return employees, nil
}
