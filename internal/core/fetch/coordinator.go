package fetch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"

	"recipe-matcher/internal/core/recipe"
	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeFetcher 執行一次外部查詢
type RecipeFetcher interface {
	Fetch(ctx context.Context, ingredients []string) []common.Recipe
}

// cycle 一次查詢週期，對應一份庫存快照
type cycle struct {
	snapshot    string
	ingredients []string
	done        chan struct{}
	recipes     []common.Recipe
}

// Coordinator 管理查詢週期
//
// 同一時間只有一個有效週期。庫存變動時開始新週期，
// 舊週期完成時結果直接丟棄，等待舊週期的呼叫端得到空結果。
type Coordinator struct {
	fetcher RecipeFetcher
	queue   *Queue
	timeout time.Duration
	wait    time.Duration

	mu      sync.Mutex
	current *cycle
}

// NewCoordinator 創建查詢週期管理器，queue 可為 nil（直接以 goroutine 執行）
func NewCoordinator(fetcher RecipeFetcher, queue *Queue, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Coordinator{
		fetcher: fetcher,
		queue:   queue,
		timeout: timeout,
	}
}

// SetWaitTimeout 設定呼叫端等待週期完成的上限，0 表示只看呼叫端的 ctx
func (c *Coordinator) SetWaitTimeout(d time.Duration) {
	c.wait = d
}

// Snapshot 庫存快照：正規化、去重、排序後的食材名稱雜湊
func Snapshot(ingredients []string) string {
	names := make([]string, 0, len(ingredients))
	seen := make(map[string]bool, len(ingredients))
	for _, ing := range ingredients {
		n := recipe.Normalize(ing)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, n := range names {
		h.Write([]byte(n))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Invalidate 庫存變動時呼叫，快照改變時才開始新的查詢週期
func (c *Coordinator) Invalidate(ingredients []string) {
	c.mu.Lock()
	if c.current != nil && c.current.snapshot == Snapshot(ingredients) {
		c.mu.Unlock()
		return
	}
	cy := c.begin(ingredients)
	c.mu.Unlock()

	c.schedule(cy)
}

// Recipes 取得目前庫存對應的外部食譜
// 快照相同時等待既有週期，否則開始新週期；ctx 結束或週期被取代時回傳空結果
func (c *Coordinator) Recipes(ctx context.Context, ingredients []string) []common.Recipe {
	snapshot := Snapshot(ingredients)

	c.mu.Lock()
	cy := c.current
	started := false
	if cy == nil || cy.snapshot != snapshot {
		cy = c.begin(ingredients)
		started = true
	}
	c.mu.Unlock()

	if started {
		c.schedule(cy)
	}

	if c.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.wait)
		defer cancel()
	}

	select {
	case <-cy.done:
		return cy.recipes
	case <-ctx.Done():
		common.LogWarn("等待外部食譜逾時", zap.String("snapshot", short(cy.snapshot)), zap.Error(ctx.Err()))
		return nil
	}
}

// Current 目前週期的快照，沒有週期時為空字串
func (c *Coordinator) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ""
	}
	return c.current.snapshot
}

// begin 建立新週期並設為目前週期，呼叫端需持有鎖
func (c *Coordinator) begin(ingredients []string) *cycle {
	cy := &cycle{
		snapshot:    Snapshot(ingredients),
		ingredients: append([]string(nil), ingredients...),
		done:        make(chan struct{}),
	}
	if c.current != nil && c.current.snapshot != cy.snapshot {
		common.LogDebug("查詢週期已被取代", zap.String("old", short(c.current.snapshot)), zap.String("new", short(cy.snapshot)))
	}
	c.current = cy
	return cy
}

// schedule 放入隊列，隊列已滿或不存在時改用 goroutine
func (c *Coordinator) schedule(cy *cycle) {
	if c.queue != nil {
		err := c.queue.Enqueue(func(ctx context.Context) { c.run(ctx, cy) })
		if err == nil {
			return
		}
		if err == ErrQueueClosed {
			c.complete(cy, nil)
			return
		}
		common.LogWarn("查詢隊列已滿，直接執行", zap.String("snapshot", short(cy.snapshot)))
	}
	go c.run(context.Background(), cy)
}

func (c *Coordinator) run(ctx context.Context, cy *cycle) {
	// 排隊期間已被取代或隊列已關閉的週期不再查詢
	if !c.isCurrent(cy) || ctx.Err() != nil {
		c.complete(cy, nil)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.complete(cy, c.fetcher.Fetch(ctx, cy.ingredients))
}

func (c *Coordinator) isCurrent(cy *cycle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current == cy
}

// complete 只有仍是目前週期時才保留結果
func (c *Coordinator) complete(cy *cycle, recipes []common.Recipe) {
	c.mu.Lock()
	if c.current == cy {
		cy.recipes = recipes
	} else if len(recipes) > 0 {
		common.LogDebug("丟棄過期週期的結果", zap.String("snapshot", short(cy.snapshot)), zap.Int("recipes", len(recipes)))
	}
	c.mu.Unlock()
	close(cy.done)
}

func short(snapshot string) string {
	if len(snapshot) > 12 {
		return snapshot[:12]
	}
	return snapshot
}
