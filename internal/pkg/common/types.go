package common

// IngredientInfo 菜餚中辨識出的食材
type IngredientInfo struct {
	Name     string  `json:"name"`
	State    *string `json:"state"`
	Quantity *string `json:"quantity"`
}

// DishIdentificationResult 菜餚辨識結果
type DishIdentificationResult struct {
	DishName          string           `json:"dish_name"`
	Type              string           `json:"type"`
	Ingredients       []IngredientInfo `json:"ingredients"`
	Origin            string           `json:"origin"`
	Preparation       []string         `json:"preparation"`
	CookingTime       *string          `json:"cooking_time"`
	ServingSuggestion *string          `json:"serving_suggestion"`
	SimilarRecipeID   *string          `json:"similar_recipe_id"`
	Success           bool             `json:"success"`
}

// RecipeRequest 依食材產生食譜的請求
type RecipeRequest struct {
	Ingredients        []string `json:"ingredients" validate:"required,min=1"`
	Calories           *int     `json:"calories" validate:"omitempty,min=1"`
	Servings           *int     `json:"servings" validate:"omitempty,min=1,max=12"`
	DietaryPreferences string   `json:"dietaryPreferences"`
}

// DefaultServings 未指定份數時的預設值
const DefaultServings = 2

// ServingCount 回傳請求份數，未指定時為預設值
func (r *RecipeRequest) ServingCount() int {
	if r.Servings == nil {
		return DefaultServings
	}
	return *r.Servings
}

// RecipeResult 產生的食譜
type RecipeResult struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PrepTime     string   `json:"prepTime"`
	Servings     int      `json:"servings"`
	Calories     string   `json:"calories"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// UploadLimits 上傳限制
type UploadLimits struct {
	MaxFileSizeMB    int      `json:"max_file_size_mb"`
	SupportedFormats []string `json:"supported_formats"`
	MaxDimensions    *string  `json:"max_dimensions"`
}
