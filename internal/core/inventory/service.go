package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrItemNotFound 庫存品項不存在
var ErrItemNotFound = errors.New("inventory item not found")

// Listener 庫存變動後收到目前所有食材名稱
type Listener func(ingredients []string)

// Service 庫存服務
//
// 每次變動都會整份重寫保存位置；寫入失敗時記憶體內容保持不變。
type Service struct {
	slot Slot

	mu        sync.RWMutex
	items     []common.InventoryItem
	listeners []Listener
}

// NewService 創建庫存服務，需呼叫 Load 載入既有資料
func NewService(slot Slot) *Service {
	return &Service{slot: slot}
}

// Load 從保存位置載入庫存
// 內容無法解析時以空庫存啟動並記錄警告；讀取失敗時回傳錯誤
func (s *Service) Load(ctx context.Context) error {
	data, err := s.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			common.LogInfo("庫存尚無資料，以空庫存啟動")
			return nil
		}
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	var items []common.InventoryItem
	if err := common.ParseJSONBytes(data, &items); err != nil {
		common.LogWarn("庫存資料無法解析，以空庫存啟動", zap.Error(err), zap.Int("bytes", len(data)))
		items = nil
	}

	s.mu.Lock()
	s.items = normalizeItems(items)
	count := len(s.items)
	s.mu.Unlock()

	common.LogInfo("庫存載入完成", zap.Int("items", count))
	return nil
}

// OnChange 註冊變動通知
func (s *Service) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// List 目前所有品項
func (s *Service) List() []common.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]common.InventoryItem(nil), s.items...)
}

// IngredientNames 可用於比對的食材名稱（略過空白名稱）
func (s *Service) IngredientNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ingredientNames(s.items)
}

// Add 新增品項，ID 空白或重複時自動產生
func (s *Service) Add(ctx context.Context, item common.InventoryItem) (common.InventoryItem, error) {
	item.Item = strings.TrimSpace(item.Item)
	if item.Item == "" {
		return common.InventoryItem{}, common.NewValidationError("item name is required")
	}

	s.mu.Lock()
	ids := idSet(s.items)
	if item.ID == "" || ids[item.ID] {
		item.ID = common.NewInventoryID()
	}
	next := append(append(make([]common.InventoryItem, 0, len(s.items)+1), s.items...), item)
	err := s.commitLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return common.InventoryItem{}, err
	}

	common.LogInfo("庫存新增品項", zap.String("id", item.ID), zap.String("item", item.Item))
	s.notify()
	return item, nil
}

// Remove 依 ID 刪除品項
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrItemNotFound
	}

	next := make([]common.InventoryItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	err := s.commitLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	common.LogInfo("庫存刪除品項", zap.String("id", id))
	s.notify()
	return nil
}

// Import 以已解析的品項取代整份庫存，沒有名稱的列會被略過
func (s *Service) Import(ctx context.Context, items []common.InventoryItem) ([]common.InventoryItem, error) {
	next := normalizeItems(items)

	s.mu.Lock()
	err := s.commitLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	common.LogInfo("庫存匯入完成", zap.Int("received", len(items)), zap.Int("imported", len(next)))
	s.notify()
	return append([]common.InventoryItem(nil), next...), nil
}

// commitLocked 先寫入保存位置，成功後才更新記憶體，呼叫端需持有寫鎖
func (s *Service) commitLocked(ctx context.Context, next []common.InventoryItem) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		common.LogError("庫存寫入失敗", zap.Error(err))
		return common.ErrInventoryWrite.Wrap(err)
	}
	s.items = next
	return nil
}

func (s *Service) notify() {
	s.mu.RLock()
	names := ingredientNames(s.items)
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.RUnlock()

	for _, l := range listeners {
		l(names)
	}
}

// normalizeItems 去除空白名稱，補上缺少或重複的 ID
func normalizeItems(items []common.InventoryItem) []common.InventoryItem {
	out := make([]common.InventoryItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		it.Item = strings.TrimSpace(it.Item)
		if it.Item == "" {
			continue
		}
		if it.ID == "" || seen[it.ID] {
			it.ID = common.NewInventoryID()
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

func ingredientNames(items []common.InventoryItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Item != "" {
			names = append(names, it.Item)
		}
	}
	return names
}

func idSet(items []common.InventoryItem) map[string]bool {
	ids := make(map[string]bool, len(items))
	for _, it := range items {
		ids[it.ID] = true
	}
	return ids
}
