package recipe

import (
	"fmt"
	"strings"

	"recipe-relay/internal/pkg/common"
)

const dishSchemaTemplate = `{
    "dish_name": "...",
    "type": "...",
    "ingredients": [
        {"name": "...", "state": "...", "quantity": "..."}
    ],
    "origin": "...",
    "preparation": ["...", "..."],
    "cooking_time": "...",
    "serving_suggestion": "..."
}`

// BuildDishPrompt 菜餚辨識提示詞，JSON 欄位名稱不隨語系改變
func BuildDishPrompt(l *Locale) string {
	var sb strings.Builder
	sb.WriteString(l.Intro)
	sb.WriteString("\n")
	for _, item := range l.Instructions {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(l.FormatLabel)
	sb.WriteString("\n")
	sb.WriteString(dishSchemaTemplate)
	return sb.String()
}

// BuildRecipePrompt 依已驗證的請求產生食譜提示詞
func BuildRecipePrompt(req *common.RecipeRequest) string {
	servings := req.ServingCount()

	requirements := []string{
		"- Language: Respond in the same language as the ingredients list",
		fmt.Sprintf("- Servings: %d", servings),
	}
	if req.Calories != nil {
		requirements = append(requirements,
			fmt.Sprintf("- Target calories per serving: around %d", CaloriesPerServing(*req.Calories, servings)))
	}
	if dietary := strings.TrimSpace(req.DietaryPreferences); dietary != "" {
		requirements = append(requirements, fmt.Sprintf("- Dietary preferences: %s", dietary))
	}

	return fmt.Sprintf(`Create a recipe using these ingredients: %s

Requirements:
%s

Please provide a complete recipe in the following JSON format:
{
    "name": "Recipe Name",
    "description": "Brief description of the dish",
    "prepTime": "X minutes",
    "servings": %d,
    "calories": "X calories per serving",
    "ingredients": [
        "ingredient 1 with measurement",
        "ingredient 2 with measurement"
    ],
    "instructions": [
        "Step 1 instruction",
        "Step 2 instruction"
    ]
}

Make sure the recipe is practical and uses realistic measurements.
Only use the ingredients provided, but you can add common seasonings and basic pantry items.
Return only the JSON, no additional text.`,
		strings.Join(req.Ingredients, ", "),
		strings.Join(requirements, "\n"),
		servings,
	)
}

// CaloriesPerServing 每份熱量，無條件捨去
func CaloriesPerServing(calories, servings int) int {
	if servings <= 0 {
		return calories
	}
	return calories / servings
}
