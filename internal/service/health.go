package service

import (
	"sync/atomic"
	"time"

	"employeehub/internal/dto"
)

type HealthService struct {
	live  atomic.Bool
	ready atomic.Bool
}

func NewHealthService() *HealthService {
	s := &HealthService{}
	s.live.Store(true)
	s.ready.Store(false) // 第一次 store 心跳成功後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// Status GET /health 的內容，不碰資料庫
func (s *HealthService) Status() dto.HealthResponse {
	return dto.HealthResponse{Status: "healthy", Timestamp: time.Now().UTC()}
}
