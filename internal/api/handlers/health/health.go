// Package health 健康檢查處理器
package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-matcher/internal/core/fetch"

	"github.com/gin-gonic/gin"
)

// CatalogInfo 本地食譜目錄資訊
type CatalogInfo interface {
	Len() int
	Version() int
}

// QueueInfo 抓取隊列狀態
type QueueInfo interface {
	Status() fetch.Status
}

// CacheInfo 快取統計
type CacheInfo interface {
	Stats() map[string]interface{}
}

// Dependencies 健康檢查所需的元件，Queue 與 Cache 可為 nil
type Dependencies struct {
	Version string
	Catalog CatalogInfo
	Queue   QueueInfo
	Cache   CacheInfo
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   *CatalogStatus         `json:"catalog,omitempty"`
	Queue     *fetch.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// CatalogStatus 目錄狀態
type CatalogStatus struct {
	Recipes int `json:"recipes"`
	Version int `json:"version"`
}

// Handler 健康檢查處理器
type Handler struct {
	deps Dependencies
}

// NewHandler 創建健康檢查處理器
func NewHandler(deps Dependencies) *Handler {
	return &Handler{deps: deps}
}

// HealthCheck 回報版本、執行期與各元件狀態
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.deps.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.deps.Catalog != nil {
		response.Catalog = &CatalogStatus{
			Recipes: h.deps.Catalog.Len(),
			Version: h.deps.Catalog.Version(),
		}
	}
	if h.deps.Queue != nil {
		status := h.deps.Queue.Status()
		response.Queue = &status
	}
	if h.deps.Cache != nil {
		response.Cache = h.deps.Cache.Stats()
	}

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 目錄已載入且抓取隊列運作中才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.deps.Catalog == nil || h.deps.Catalog.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "catalog not loaded",
		})
		return
	}
	if h.deps.Queue != nil && !h.deps.Queue.Status().Running {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "fetch queue stopped",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
