package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recipe-relay/internal/pkg/common"
)

func TestValidateRecipeRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *common.RecipeRequest
		want error
	}{
		{"nil request", nil, common.ErrInvalidRequest},
		{"missing ingredients", &common.RecipeRequest{}, common.ErrEmptyIngredientList},
		{"empty ingredients", &common.RecipeRequest{Ingredients: []string{}}, common.ErrEmptyIngredientList},
		{"zero calories", &common.RecipeRequest{Ingredients: []string{"egg"}, Calories: intPtr(0)}, common.ErrInvalidCalories},
		{"zero servings", &common.RecipeRequest{Ingredients: []string{"egg"}, Servings: intPtr(0)}, common.ErrInvalidServings},
		{"too many servings", &common.RecipeRequest{Ingredients: []string{"egg"}, Servings: intPtr(13)}, common.ErrInvalidServings},
		{"valid minimal", &common.RecipeRequest{Ingredients: []string{"egg"}}, nil},
		{"valid full", &common.RecipeRequest{Ingredients: []string{"egg"}, Calories: intPtr(800), Servings: intPtr(12)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipeRequest(tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
