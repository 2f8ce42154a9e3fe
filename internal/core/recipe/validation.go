package recipe

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"recipe-relay/internal/pkg/common"
)

var validate = validator.New()

// 欄位驗證失敗時對應的錯誤
var fieldErrors = map[string]*common.AppError{
	"Ingredients": common.ErrEmptyIngredientList,
	"Calories":    common.ErrInvalidCalories,
	"Servings":    common.ErrInvalidServings,
}

// ValidateRecipeRequest 檢查食譜請求，回傳第一個不合法的欄位
func ValidateRecipeRequest(req *common.RecipeRequest) error {
	if req == nil {
		return common.ErrInvalidRequest
	}

	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return common.ErrInvalidRequest
	}

	if appErr, ok := fieldErrors[validationErrors[0].StructField()]; ok {
		return appErr
	}
	return common.ErrInvalidRequest
}
