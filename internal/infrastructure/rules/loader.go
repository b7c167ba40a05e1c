// Package rules reads scoring tables and ingredient knowledge from YAML or JSON files.
// A file only needs the sections it changes: each top-level section present in the file
// replaces the base section, except knowledge maps which are merged key by key.
package rules

import (
	"fmt"

	"github.com/instadish/backend/internal/domain"
	"github.com/spf13/viper"
)

// LoadScoringRules reads path on top of base. An empty path returns base unchanged.
func LoadScoringRules(path string, base domain.ScoringRules) (domain.ScoringRules, error) {
	if path == "" {
		return base, nil
	}

	v, err := read(path)
	if err != nil {
		return base, err
	}

	var file domain.ScoringRules
	if err := v.Unmarshal(&file); err != nil {
		return base, fmt.Errorf("unable to decode scoring rules %s: %w", path, err)
	}

	rules := base
	if v.IsSet("sustainability") {
		rules.Sustainability = file.Sustainability
	}
	if v.IsSet("health") {
		rules.Health = file.Health
	}
	if v.IsSet("carbon") {
		rules.Carbon = file.Carbon
	}
	if v.IsSet("water") {
		rules.Water = file.Water
	}
	if v.IsSet("calories") {
		rules.Calories = file.Calories
	}
	if v.IsSet("sustainability_tips") {
		rules.SustainabilityTips = file.SustainabilityTips
	}
	if v.IsSet("health_tips") {
		rules.HealthTips = file.HealthTips
	}
	if v.IsSet("grades") {
		rules.Grades = file.Grades
	}
	if v.IsSet("max_tips") {
		rules.MaxTips = file.MaxTips
	}

	if err := validateRules(rules); err != nil {
		return base, fmt.Errorf("invalid scoring rules %s: %w", path, err)
	}
	return rules, nil
}

// LoadKnowledge reads path on top of base. An empty path returns base unchanged.
func LoadKnowledge(path string, base domain.IngredientKnowledge) (domain.IngredientKnowledge, error) {
	if path == "" {
		return base, nil
	}

	v, err := read(path)
	if err != nil {
		return base, err
	}

	var file domain.IngredientKnowledge
	if err := v.Unmarshal(&file); err != nil {
		return base, fmt.Errorf("unable to decode ingredient knowledge %s: %w", path, err)
	}

	knowledge := base
	knowledge.CriticalByCategory = merge(base.CriticalByCategory, file.CriticalByCategory)
	knowledge.Substitutions = merge(base.Substitutions, file.Substitutions)
	knowledge.Aliases = merge(base.Aliases, file.Aliases)
	if v.IsSet("primary_proteins") {
		knowledge.PrimaryProteins = file.PrimaryProteins
	}
	if v.IsSet("important") {
		knowledge.Important = file.Important
	}
	return knowledge, nil
}

func read(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}
	return v, nil
}

// merge returns a new map holding base overlaid with extra
func merge(base, extra map[string][]string) map[string][]string {
	if len(extra) == 0 {
		return base
	}
	out := make(map[string][]string, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func validateRules(r domain.ScoringRules) error {
	for _, t := range []domain.ScoreTable{r.Sustainability, r.Health} {
		if t.Baseline < 0 || t.Baseline > 100 {
			return fmt.Errorf("baseline must be within 0-100, got %v", t.Baseline)
		}
		for _, rule := range t.Rules {
			if rule.Keyword == "" {
				return fmt.Errorf("rule with empty keyword")
			}
		}
	}

	for i, band := range r.Grades {
		if band.Grade == "" {
			return fmt.Errorf("grade band %d has no grade", i)
		}
	}
	return nil
}
