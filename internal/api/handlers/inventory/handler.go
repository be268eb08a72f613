// Package inventory 廚房庫存的 HTTP 處理器
package inventory

import (
	"errors"
	"net/http"
	"strconv"

	"recipe-matcher/internal/api/handlers"
	inventoryService "recipe-matcher/internal/core/inventory"
	"recipe-matcher/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// defaultPantryLimit 快速新增建議的預設筆數
const defaultPantryLimit = 10

// ItemsResponse 庫存清單
type ItemsResponse struct {
	Items []common.InventoryItem `json:"items"`
	Count int                    `json:"count"`
}

// ImportRequest 以整份清單取代庫存
type ImportRequest struct {
	Items []common.InventoryItem `json:"items"`
}

// PantryRequest 快速新增常見食材
type PantryRequest struct {
	Item string `json:"item" binding:"required"`
}

// Handler 庫存處理程序
type Handler struct {
	service *inventoryService.Service
}

// NewHandler 創建新的庫存處理程序
func NewHandler(service *inventoryService.Service) *Handler {
	return &Handler{service: service}
}

// HandleList 列出目前庫存
func (h *Handler) HandleList(c *gin.Context) {
	c.JSON(http.StatusOK, itemsResponse(h.service.List()))
}

// HandleAdd 新增單一品項
func (h *Handler) HandleAdd(c *gin.Context) {
	var item common.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		handlers.RespondBadRequest(c, err)
		return
	}

	added, err := h.service.Add(c.Request.Context(), item)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

// HandleImport 匯入整份庫存
func (h *Handler) HandleImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBadRequest(c, err)
		return
	}

	items, err := h.service.Import(c.Request.Context(), req.Items)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, itemsResponse(items))
}

// HandleRemove 依 ID 刪除品項
func (h *Handler) HandleRemove(c *gin.Context) {
	err := h.service.Remove(c.Request.Context(), c.Param("id"))
	if errors.Is(err, inventoryService.ErrItemNotFound) {
		handlers.RespondError(c, common.ErrInventoryNotFound)
		return
	}
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandlePantrySuggestions 以模糊比對列出常見食材
func (h *Handler) HandlePantrySuggestions(c *gin.Context) {
	limit := defaultPantryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			handlers.RespondError(c, common.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, itemsResponse(inventoryService.SuggestPantryItems(c.Query("q"), limit)))
}

// HandlePantryAdd 將常見食材加入庫存
func (h *Handler) HandlePantryAdd(c *gin.Context) {
	var req PantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondBadRequest(c, err)
		return
	}

	added, err := h.service.AddPantryItem(c.Request.Context(), req.Item)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, added)
}

func itemsResponse(items []common.InventoryItem) ItemsResponse {
	if items == nil {
		items = []common.InventoryItem{}
	}
	return ItemsResponse{Items: items, Count: len(items)}
}
