package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-relay/internal/pkg/common"
)

func TestRequireFields_FirstMissingWins(t *testing.T) {
	data := map[string]interface{}{
		"dish_name":   "Paella",
		"ingredients": []interface{}{"rice"},
	}

	err := RequireFields(data, DishRequiredFields)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingField)
	assert.Equal(t, "preparation", common.AsAppError(err).Field)
}

func TestRequireFields_NullCountsAsMissing(t *testing.T) {
	data := map[string]interface{}{
		"name":         "Soup",
		"ingredients":  nil,
		"instructions": []interface{}{"boil"},
	}

	err := RequireFields(data, RecipeRequiredFields)
	assert.Equal(t, "ingredients", common.AsAppError(err).Field)
}

func TestMergeRecipe_AppliesDefaults(t *testing.T) {
	data, err := common.ExtractJSONObject(
		`Here you go: {"name":"Soup","ingredients":["water"],"instructions":["boil"]} bon appetit`,
		common.StrategyGreedy,
	)
	require.NoError(t, err)

	result, err := MergeRecipe(data, 4)
	require.NoError(t, err)

	assert.Equal(t, &common.RecipeResult{
		Name:         "Soup",
		Description:  DefaultDescription,
		PrepTime:     DefaultPrepTime,
		Servings:     4,
		Calories:     DefaultCalories,
		Ingredients:  []string{"water"},
		Instructions: []string{"boil"},
	}, result)
}

func TestMergeRecipe_KeepsModelValues(t *testing.T) {
	data := map[string]interface{}{
		"name":         "Tortilla",
		"description":  "Spanish omelette",
		"prepTime":     "40 minutes",
		"servings":     json.Number("3"),
		"calories":     "350 calories per serving",
		"ingredients":  []interface{}{"4 eggs", "2 potatoes", nil},
		"instructions": "Fry everything",
	}

	result, err := MergeRecipe(data, 2)
	require.NoError(t, err)

	assert.Equal(t, "Spanish omelette", result.Description)
	assert.Equal(t, "40 minutes", result.PrepTime)
	assert.Equal(t, 3, result.Servings)
	assert.Equal(t, "350 calories per serving", result.Calories)
	assert.Equal(t, []string{"4 eggs", "2 potatoes"}, result.Ingredients)
	assert.Equal(t, []string{"Fry everything"}, result.Instructions)
}

func TestMergeRecipe_InvalidServingsFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		servings interface{}
		want     int
	}{
		{"numeric string", "6", 6},
		{"zero", json.Number("0"), 2},
		{"text", "a few", 2},
		{"object", map[string]interface{}{"n": 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := map[string]interface{}{
				"name":         "Soup",
				"ingredients":  []interface{}{"water"},
				"instructions": []interface{}{"boil"},
				"servings":     tt.servings,
			}
			result, err := MergeRecipe(data, 2)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Servings)
		})
	}
}

func TestMergeRecipe_MissingInstructions(t *testing.T) {
	_, err := MergeRecipe(map[string]interface{}{
		"name":        "Soup",
		"ingredients": []interface{}{"water"},
	}, 2)

	assert.ErrorIs(t, err, common.ErrMissingField)
	assert.Equal(t, "instructions", common.AsAppError(err).Field)
}

func TestMergeDish_DefaultsAndCoercion(t *testing.T) {
	en, _ := LookupLocale("en")
	data := map[string]interface{}{
		"dish_name": "Paella",
		"ingredients": []interface{}{
			map[string]interface{}{"name": "rice", "state": "cooked", "quantity": json.Number("200")},
			"saffron",
			nil,
		},
		"origin":      "Spain",
		"preparation": "Cook the rice with stock",
	}

	result, err := MergeDish(data, en)
	require.NoError(t, err)

	assert.Equal(t, "Paella", result.DishName)
	assert.Equal(t, "main course", result.Type)
	assert.Equal(t, "Spain", result.Origin)
	assert.Equal(t, []string{"Cook the rice with stock"}, result.Preparation)
	assert.Nil(t, result.CookingTime)
	assert.Nil(t, result.ServingSuggestion)
	assert.Nil(t, result.SimilarRecipeID)
	assert.True(t, result.Success)

	require.Len(t, result.Ingredients, 2)
	assert.Equal(t, "rice", result.Ingredients[0].Name)
	require.NotNil(t, result.Ingredients[0].State)
	assert.Equal(t, "cooked", *result.Ingredients[0].State)
	require.NotNil(t, result.Ingredients[0].Quantity)
	assert.Equal(t, "200", *result.Ingredients[0].Quantity)
	assert.Equal(t, common.IngredientInfo{Name: "saffron"}, result.Ingredients[1])
}

func TestMergeDish_LocalizedDefaultType(t *testing.T) {
	es, _ := LookupLocale("es")
	result, err := MergeDish(map[string]interface{}{
		"dish_name":    "Paella",
		"ingredients":  []interface{}{"arroz"},
		"origin":       "España",
		"preparation":  []interface{}{"Cocinar"},
		"cooking_time": "45 minutos",
	}, es)
	require.NoError(t, err)

	assert.Equal(t, "principal", result.Type)
	require.NotNil(t, result.CookingTime)
	assert.Equal(t, "45 minutos", *result.CookingTime)
}

func TestMergeDish_IngredientWithoutName(t *testing.T) {
	en, _ := LookupLocale("en")
	_, err := MergeDish(map[string]interface{}{
		"dish_name": "Paella",
		"ingredients": []interface{}{
			map[string]interface{}{"name": "rice"},
			map[string]interface{}{"state": "raw"},
		},
		"origin":      "Spain",
		"preparation": []interface{}{"Cook"},
	}, en)

	assert.ErrorIs(t, err, common.ErrMissingField)
	assert.Equal(t, "ingredients[1].name", common.AsAppError(err).Field)
}
