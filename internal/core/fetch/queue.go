package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// 隊列錯誤
var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// Job 隊列工作
type Job func(ctx context.Context)

// Status 隊列狀態
type Status struct {
	QueueLength    int  `json:"queue_length"`
	ProcessedCount int  `json:"processed_count"`
	MaxQueueSize   int  `json:"max_queue_size"`
	Workers        int  `json:"workers"`
	Running        bool `json:"running"`
}

// Queue 有上限的工作隊列
type Queue struct {
	jobs      chan Job
	done      chan struct{}
	workers   int
	maxSize   int
	processed int64
	running   int32
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewQueue 創建新的隊列
func NewQueue(workers, maxSize int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if maxSize <= 0 {
		maxSize = 1
	}
	return &Queue{
		jobs:    make(chan Job, maxSize),
		done:    make(chan struct{}),
		workers: workers,
		maxSize: maxSize,
	}
}

// Start 啟動 worker，ctx 結束或 Close 後停止
func (q *Queue) Start(ctx context.Context) {
	if !atomic.CompareAndSwapInt32(&q.running, 0, 1) {
		return
	}
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.work(ctx, i)
	}
	common.LogInfo("查詢隊列已啟動", zap.Int("workers", q.workers), zap.Int("max_queue_size", q.maxSize))
}

func (q *Queue) work(ctx context.Context, id int) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-q.done:
			return
		case job := <-q.jobs:
			job(ctx)
			atomic.AddInt64(&q.processed, 1)
			common.LogDebug("隊列工作完成", zap.Int("worker", id))
		}
	}
}

// Enqueue 將工作加入隊列，不會阻塞
func (q *Queue) Enqueue(job Job) error {
	select {
	case <-q.done:
		return ErrQueueClosed
	default:
	}

	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Status 獲取隊列狀態
func (q *Queue) Status() Status {
	return Status{
		QueueLength:    len(q.jobs),
		ProcessedCount: int(atomic.LoadInt64(&q.processed)),
		MaxQueueSize:   q.maxSize,
		Workers:        q.workers,
		Running:        atomic.LoadInt32(&q.running) == 1,
	}
}

// Close 停止所有 worker，尚未處理的工作以已取消的 ctx 執行，讓工作自行收尾
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
		q.wg.Wait()
		atomic.StoreInt32(&q.running, 0)
		drained := q.drain()
		common.LogInfo("查詢隊列已關閉",
			zap.Int64("processed", atomic.LoadInt64(&q.processed)),
			zap.Int("drained", drained),
		)
	})
}

func (q *Queue) drain() int {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := 0
	for {
		select {
		case job := <-q.jobs:
			job(ctx)
			n++
		default:
			return n
		}
	}
}
