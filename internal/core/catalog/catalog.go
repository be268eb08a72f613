// Package catalog 本地食譜目錄，內嵌於執行檔，載入後唯讀
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"recipe-matcher/internal/pkg/common"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed data/recipes.yaml
var defaultData []byte

// SourceLocal 本地目錄食譜的來源標記
const SourceLocal = "local"

type catalogFile struct {
	Version int             `yaml:"version"`
	Recipes []common.Recipe `yaml:"recipes"`
}

// Catalog 不可變的食譜目錄，對外只提供副本
type Catalog struct {
	version int
	recipes []common.Recipe
	byID    map[string]int
}

// Load 從 YAML 讀取並驗證目錄
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	c := &Catalog{
		version: file.Version,
		recipes: make([]common.Recipe, 0, len(file.Recipes)),
		byID:    make(map[string]int, len(file.Recipes)),
	}
	for i, r := range file.Recipes {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, r.ID)
		}
		r.Source = SourceLocal
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}

	return c, nil
}

// LoadDefault 載入內嵌的預設目錄
func LoadDefault() (*Catalog, error) {
	c, err := Load(bytes.NewReader(defaultData))
	if err != nil {
		return nil, err
	}
	common.LogInfo("食譜目錄載入完成", zap.Int("version", c.version), zap.Int("recipes", c.Len()))
	return c, nil
}

func validate(r common.Recipe) error {
	if strings.TrimSpace(r.ID) == "" {
		return common.NewValidationError("missing id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return common.NewValidationError(fmt.Sprintf("recipe %s: missing name", r.ID))
	}
	if !r.Continent.IsValid() {
		return common.NewValidationError(fmt.Sprintf("recipe %s: unknown continent %q", r.ID, r.Continent))
	}
	if !r.MealType.IsValid() {
		return common.NewValidationError(fmt.Sprintf("recipe %s: unknown meal type %q", r.ID, r.MealType))
	}
	if r.Servings < 0 {
		return common.NewValidationError(fmt.Sprintf("recipe %s: negative servings", r.ID))
	}
	return nil
}

// All 依目錄順序回傳所有食譜的副本
func (c *Catalog) All() []common.Recipe {
	out := make([]common.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Get 依 ID 取得食譜
func (c *Catalog) Get(id string) (common.Recipe, bool) {
	i, ok := c.byID[id]
	if !ok {
		return common.Recipe{}, false
	}
	return c.recipes[i].Clone(), true
}

// Len 食譜數量
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// Version 目錄資料版本
func (c *Catalog) Version() int {
	return c.version
}
