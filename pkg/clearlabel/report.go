package clearlabel

import (
	"github.com/clearlabel/clearlabel/pkg/clearlabel/classifier"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/match"
)

// IngredientVerdict pairs an extracted candidate with its match result.
type IngredientVerdict struct {
	Ingredient string `json:"ingredient"`
	match.Result
}

// Advisory is a classifier opinion on a candidate the cascade did not
// flag. Advisory signals never affect the harmful/safe split or the
// safety score.
type Advisory struct {
	Ingredient string `json:"ingredient"`
	classifier.Prediction
}

// Recommendation suggests safer replacements for a flagged ingredient.
type Recommendation struct {
	HarmfulIngredient string   `json:"harmful_ingredient"`
	SaferAlternatives []string `json:"safer_alternatives"`
	Explanation       string   `json:"explanation"`
	ProductTypes      []string `json:"product_types,omitempty"`
}

// Report is the result of analyzing one label text. Ingredient ordering
// follows first appearance in the source text.
type Report struct {
	ID                   string              `json:"id"`
	Harmful              []IngredientVerdict `json:"harmful"`
	Safe                 []string            `json:"safe"`
	TotalCount           int                 `json:"total_count"`
	SafetyScore          int                 `json:"safety_score"`
	CategoriesFound      map[string]int      `json:"categories_found"`
	CategoryDescriptions map[string]string   `json:"category_descriptions,omitempty"`
	Recommendations      []Recommendation    `json:"recommendations,omitempty"`
	Tips                 []string            `json:"tips,omitempty"`
	Advisories           []Advisory          `json:"advisories,omitempty"`
}

// categoryTips are shown when a category is present in the report.
var categoryTips = map[string]string{
	"carcinogen":          "Look for products certified by clean beauty standards organizations",
	"endocrine_disruptor": "Choose products with minimal ingredients and clear labeling",
	"allergen":            "Patch test new products and choose fragrance-free options",
	"environmental_toxin": "Consider reef-safe and biodegradable products",
}

// generalTips accompany any report that flags at least one ingredient.
var generalTips = []string{
	"Research brands that focus on natural and organic ingredients",
	"Check for third-party certifications for safety claims",
	"Use ingredient databases to research unfamiliar names",
}

// tipOrder fixes the emission order of category tips so reports are
// reproducible.
var tipOrder = []string{"carcinogen", "endocrine_disruptor", "allergen", "environmental_toxin"}

func safetyTips(categoriesFound map[string]int) []string {
	if len(categoriesFound) == 0 {
		return nil
	}
	var tips []string
	for _, cat := range tipOrder {
		if categoriesFound[cat] > 0 {
			tips = append(tips, categoryTips[cat])
		}
	}
	return append(tips, generalTips...)
}
