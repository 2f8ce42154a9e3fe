package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"recipe-relay/internal/pkg/common"
)

// 必要欄位，依檢查順序排列
var (
	DishRequiredFields   = []string{"dish_name", "ingredients", "preparation", "origin"}
	RecipeRequiredFields = []string{"name", "ingredients", "instructions"}
)

// 食譜選填欄位的預設值
const (
	DefaultDescription = "A delicious recipe made with your ingredients"
	DefaultPrepTime    = "30 minutes"
	DefaultCalories    = "Varies"
)

// RequireFields 回傳第一個缺少的必要欄位錯誤，null 視為缺少
func RequireFields(data map[string]interface{}, fields []string) error {
	for _, field := range fields {
		if v, ok := data[field]; !ok || v == nil {
			return common.NewMissingFieldError(field)
		}
	}
	return nil
}

// MergeRecipe 由模型回傳的物件建立食譜，補上選填欄位的預設值
func MergeRecipe(data map[string]interface{}, requestedServings int) (*common.RecipeResult, error) {
	if err := RequireFields(data, RecipeRequiredFields); err != nil {
		return nil, err
	}

	return &common.RecipeResult{
		Name:         stringify(data["name"]),
		Description:  stringOr(data, "description", DefaultDescription),
		PrepTime:     stringOr(data, "prepTime", DefaultPrepTime),
		Servings:     intOr(data["servings"], requestedServings),
		Calories:     stringOr(data, "calories", DefaultCalories),
		Ingredients:  stringList(data["ingredients"]),
		Instructions: stringList(data["instructions"]),
	}, nil
}

// MergeDish 由模型回傳的物件建立菜餚辨識結果
func MergeDish(data map[string]interface{}, l *Locale) (*common.DishIdentificationResult, error) {
	if err := RequireFields(data, DishRequiredFields); err != nil {
		return nil, err
	}

	ingredients, err := ingredientList(data["ingredients"])
	if err != nil {
		return nil, err
	}

	return &common.DishIdentificationResult{
		DishName:          stringify(data["dish_name"]),
		Type:              stringOr(data, "type", l.DefaultType),
		Ingredients:       ingredients,
		Origin:            stringify(data["origin"]),
		Preparation:       stringList(data["preparation"]),
		CookingTime:       optionalString(data["cooking_time"]),
		ServingSuggestion: optionalString(data["serving_suggestion"]),
		SimilarRecipeID:   nil,
		Success:           true,
	}, nil
}

func ingredientList(v interface{}) ([]common.IngredientInfo, error) {
	items, ok := v.([]interface{})
	if !ok {
		items = []interface{}{v}
	}

	result := make([]common.IngredientInfo, 0, len(items))
	for i, item := range items {
		switch t := item.(type) {
		case map[string]interface{}:
			name, ok := t["name"]
			if !ok || name == nil {
				return nil, common.NewMissingFieldError(fmt.Sprintf("ingredients[%d].name", i))
			}
			result = append(result, common.IngredientInfo{
				Name:     stringify(name),
				State:    optionalString(t["state"]),
				Quantity: optionalString(t["quantity"]),
			})
		case nil:
			continue
		default:
			result = append(result, common.IngredientInfo{Name: stringify(t)})
		}
	}
	return result, nil
}

// 陣列欄位若為單一值則包成一個元素
func stringList(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, stringify(item))
		}
		return out
	}
	return []string{stringify(v)}
}

func stringOr(data map[string]interface{}, key, fallback string) string {
	v, ok := data[key]
	if !ok || v == nil {
		return fallback
	}
	return stringify(v)
}

func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := stringify(v)
	return &s
}

func intOr(v interface{}, fallback int) int {
	var n float64
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return fallback
		}
		n = f
	case float64:
		n = t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return fallback
		}
		n = f
	default:
		return fallback
	}
	if n < 1 || n > math.MaxInt32 {
		return fallback
	}
	return int(n)
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
