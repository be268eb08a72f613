package fetch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-matcher/internal/pkg/common"
)

// gatedFetcher 每次查詢都等到測試放行
type gatedFetcher struct {
	mu      sync.Mutex
	calls   [][]string
	release chan struct{}
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{release: make(chan struct{})}
}

func (f *gatedFetcher) Fetch(ctx context.Context, ingredients []string) []common.Recipe {
	f.mu.Lock()
	f.calls = append(f.calls, ingredients)
	f.mu.Unlock()

	select {
	case <-f.release:
	case <-ctx.Done():
		return nil
	}
	return []common.Recipe{{ID: "mealdb-1", Name: "Result for " + ingredients[0]}}
}

func (f *gatedFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestSnapshotIgnoresOrderAndCase(t *testing.T) {
	a := Snapshot([]string{"Garlic", "Onion", "onion"})
	b := Snapshot([]string{"onion", "GARLIC!"})
	c := Snapshot([]string{"onion"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestCoordinatorRecipes(t *testing.T) {
	f := newGatedFetcher()
	close(f.release)
	c := NewCoordinator(f, nil, time.Second)

	recipes := c.Recipes(context.Background(), []string{"rice"})
	require.Len(t, recipes, 1)
	assert.Equal(t, "Result for rice", recipes[0].Name)

	// 相同快照重用既有週期
	again := c.Recipes(context.Background(), []string{"Rice"})
	assert.Equal(t, recipes, again)
	assert.Equal(t, 1, f.callCount())
}

func TestCoordinatorDiscardsSupersededCycle(t *testing.T) {
	f := newGatedFetcher()
	c := NewCoordinator(f, nil, 5*time.Second)

	type result struct{ recipes []common.Recipe }
	oldResult := make(chan result, 1)
	go func() {
		oldResult <- result{c.Recipes(context.Background(), []string{"rice"})}
	}()

	require.Eventually(t, func() bool { return f.callCount() == 1 }, time.Second, 5*time.Millisecond)

	// 庫存變動，舊週期被取代
	c.Invalidate([]string{"pasta"})
	require.Eventually(t, func() bool { return f.callCount() == 2 }, time.Second, 5*time.Millisecond)

	close(f.release)

	select {
	case r := <-oldResult:
		assert.Empty(t, r.recipes)
	case <-time.After(2 * time.Second):
		t.Fatal("old cycle never completed")
	}

	recipes := c.Recipes(context.Background(), []string{"pasta"})
	require.Len(t, recipes, 1)
	assert.Equal(t, "Result for pasta", recipes[0].Name)
	assert.Equal(t, Snapshot([]string{"pasta"}), c.Current())
}

func TestCoordinatorKeepsCycleWhenSnapshotUnchanged(t *testing.T) {
	f := newGatedFetcher()
	c := NewCoordinator(f, nil, 5*time.Second)

	got := make(chan []common.Recipe, 1)
	go func() {
		got <- c.Recipes(context.Background(), []string{"Rice", "Garlic"})
	}()
	require.Eventually(t, func() bool { return f.callCount() == 1 }, time.Second, 5*time.Millisecond)

	// 大小寫與重複不同，但正規化後的食材集合相同
	c.Invalidate([]string{"garlic", "rice", "RICE"})
	close(f.release)

	select {
	case recipes := <-got:
		assert.NotEmpty(t, recipes)
	case <-time.After(2 * time.Second):
		t.Fatal("cycle never completed")
	}
	assert.Equal(t, 1, f.callCount())
}

func TestCoordinatorCompletesCyclesDrainedOnClose(t *testing.T) {
	f := newGatedFetcher()
	defer close(f.release)
	q := NewQueue(1, 4)
	c := NewCoordinator(f, q, 5*time.Second)

	// 隊列尚未啟動，週期停在緩衝區
	c.Invalidate([]string{"rice"})

	got := make(chan []common.Recipe, 1)
	go func() {
		got <- c.Recipes(context.Background(), []string{"rice"})
	}()

	q.Close()

	select {
	case recipes := <-got:
		assert.Empty(t, recipes)
	case <-time.After(2 * time.Second):
		t.Fatal("waiter blocked after queue close")
	}
	assert.Equal(t, 0, f.callCount())
}

func TestCoordinatorContextExpiry(t *testing.T) {
	f := newGatedFetcher()
	defer close(f.release)
	c := NewCoordinator(f, nil, 5*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Empty(t, c.Recipes(ctx, []string{"rice"}))
}

func TestCoordinatorWithQueue(t *testing.T) {
	f := newGatedFetcher()
	close(f.release)

	q := NewQueue(1, 4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Close()

	c := NewCoordinator(f, q, time.Second)
	c.Invalidate([]string{"beef"})

	recipes := c.Recipes(context.Background(), []string{"beef"})
	require.Len(t, recipes, 1)
	assert.Equal(t, 1, f.callCount())
	assert.Eventually(t, func() bool { return q.Status().ProcessedCount == 1 }, time.Second, 5*time.Millisecond)
}

func TestCoordinatorWaitTimeout(t *testing.T) {
	f := newGatedFetcher()
	defer close(f.release)
	c := NewCoordinator(f, nil, time.Minute)
	c.SetWaitTimeout(20 * time.Millisecond)

	start := time.Now()
	assert.Empty(t, c.Recipes(context.Background(), []string{"rice"}))
	assert.Less(t, time.Since(start), 5*time.Second)
}
