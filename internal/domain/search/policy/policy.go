package policy

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/unisearch/internal/domain/content"
	"github.com/kailas-cloud/unisearch/internal/domain/search/intent"
)

// DefaultVersion identifies the built-in ranking tables.
const DefaultVersion = "2024-builtin"

// CategoryBonus awards Bonus when the query intent is Intent and the
// candidate is of Kind.
type CategoryBonus struct {
	Intent intent.Category `yaml:"intent"`
	Kind   content.Kind    `yaml:"kind"`
	Bonus  int             `yaml:"bonus"`
}

// Ranking holds the tunable scoring tables of the result scorer.
type Ranking struct {
	Version string `yaml:"version"`

	KeywordMatchBonus int `yaml:"keyword_match_bonus"`
	DescOrTagBonus    int `yaml:"desc_or_tag_bonus"`

	CategoryBonuses  []CategoryBonus `yaml:"category_bonuses"`
	SubCategoryBonus int             `yaml:"sub_category_bonus"`
	// SubCategoryTags maps an upper-case sub-category to tag fragments that
	// signal it.
	SubCategoryTags map[string][]string `yaml:"sub_category_tags"`

	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	FuzzyScale     float64 `yaml:"fuzzy_scale"`
}

// Default returns the built-in ranking tables.
func Default() Ranking {
	return Ranking{
		Version:           DefaultVersion,
		KeywordMatchBonus: 100,
		DescOrTagBonus:    50,
		CategoryBonuses: []CategoryBonus{
			{Intent: intent.Navigation, Kind: content.KindServer, Bonus: 200},
			{Intent: intent.Server, Kind: content.KindServer, Bonus: 200},
			{Intent: intent.Guide, Kind: content.KindWiki, Bonus: 100},
			{Intent: intent.Resource, Kind: content.KindResource, Bonus: 100},
		},
		SubCategoryBonus: 150,
		SubCategoryTags: map[string][]string{
			"MODS":         {"mod", "addon", "모드", "애드온"},
			"MAPS":         {"map", "맵", "월드"},
			"PLUGINS":      {"plugin", "플러그인"},
			"RESOURCEPACK": {"resourcepack", "texture", "리소스팩", "텍스처"},
			"SHADERS":      {"shader", "쉐이더"},
			"SKINS":        {"skin", "스킨"},
			"NEWS":         {"news", "뉴스", "공지"},
		},
		FuzzyThreshold: 0.3,
		FuzzyScale:     300,
	}
}

// Overrides is a partial Ranking read from configuration. Nil fields keep
// the base value, so an explicit zero is a valid override.
type Overrides struct {
	Version           *string             `yaml:"version"`
	KeywordMatchBonus *int                `yaml:"keyword_match_bonus"`
	DescOrTagBonus    *int                `yaml:"desc_or_tag_bonus"`
	CategoryBonuses   []CategoryBonus     `yaml:"category_bonuses"`
	SubCategoryBonus  *int                `yaml:"sub_category_bonus"`
	SubCategoryTags   map[string][]string `yaml:"sub_category_tags"`
	FuzzyThreshold    *float64            `yaml:"fuzzy_threshold"`
	FuzzyScale        *float64            `yaml:"fuzzy_scale"`
}

// Apply returns r with every set field of o replacing its counterpart.
// A non-nil empty CategoryBonuses list clears the category table.
func (r Ranking) Apply(o Overrides) Ranking {
	set(&r.Version, o.Version)
	set(&r.KeywordMatchBonus, o.KeywordMatchBonus)
	set(&r.DescOrTagBonus, o.DescOrTagBonus)
	set(&r.SubCategoryBonus, o.SubCategoryBonus)
	set(&r.FuzzyThreshold, o.FuzzyThreshold)
	set(&r.FuzzyScale, o.FuzzyScale)
	if o.CategoryBonuses != nil {
		r.CategoryBonuses = o.CategoryBonuses
	}
	if o.SubCategoryTags != nil {
		r.SubCategoryTags = o.SubCategoryTags
	}
	return r
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Validate checks the tables for consistency.
func (r Ranking) Validate() error {
	if r.KeywordMatchBonus < 0 || r.DescOrTagBonus < 0 || r.SubCategoryBonus < 0 {
		return fmt.Errorf("ranking bonuses must be non-negative")
	}
	for i, cb := range r.CategoryBonuses {
		if intent.ParseCategory(string(cb.Intent)) != cb.Intent {
			return fmt.Errorf("category_bonuses[%d]: unknown intent %q", i, cb.Intent)
		}
		if _, ok := content.ParseKind(string(cb.Kind)); !ok {
			return fmt.Errorf("category_bonuses[%d]: unknown kind %q", i, cb.Kind)
		}
		if cb.Bonus < 0 {
			return fmt.Errorf("category_bonuses[%d]: bonus must be non-negative", i)
		}
	}
	if r.FuzzyThreshold < 0 || r.FuzzyThreshold > 1 {
		return fmt.Errorf("fuzzy_threshold must be between 0 and 1, got %v", r.FuzzyThreshold)
	}
	if r.FuzzyScale < 0 {
		return fmt.Errorf("fuzzy_scale must be non-negative")
	}
	return nil
}

// CategoryBonusFor returns the bonus for an intent/kind pair, 0 if none.
func (r Ranking) CategoryBonusFor(c intent.Category, k content.Kind) int {
	for _, cb := range r.CategoryBonuses {
		if cb.Intent == c && cb.Kind == k {
			return cb.Bonus
		}
	}
	return 0
}

// SubCategoryMatches reports whether any tag signals subCategory.
func (r Ranking) SubCategoryMatches(subCategory string, tags []string) bool {
	if subCategory == "" {
		return false
	}
	fragments, ok := r.SubCategoryTags[strings.ToUpper(subCategory)]
	if !ok {
		// An unmapped sub-category still matches a tag carrying its own name.
		fragments = []string{subCategory}
	}
	for _, tag := range tags {
		lt := strings.ToLower(tag)
		for _, f := range fragments {
			if f != "" && strings.Contains(lt, strings.ToLower(f)) {
				return true
			}
		}
	}
	return false
}
