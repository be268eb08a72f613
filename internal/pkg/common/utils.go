package common

import (
	"github.com/google/uuid"
)

// NewInventoryID 生成庫存品項 ID
func NewInventoryID() string {
	return "item-" + uuid.New().String()
}
