package model

import (
	"sort"
	"testing"
)

func TestParseFeatureSet(t *testing.T) {
	tests := []struct {
		name    string
		enabled []string
		has     []Feature
		hasNot  []Feature
	}{
		{
			name:    "all features",
			enabled: []string{"questionnaire", "admin", "reports", "personalPresentation", "aboutPage"},
			has:     []Feature{FeatureQuestionnaire, FeatureAdmin, FeatureReports, FeaturePersonalPresentation, FeatureAboutPage},
		},
		{
			name:    "subset",
			enabled: []string{"questionnaire", "reports"},
			has:     []Feature{FeatureQuestionnaire, FeatureReports},
			hasNot:  []Feature{FeatureAdmin, FeaturePersonalPresentation, FeatureAboutPage},
		},
		{
			name:    "whitespace and unknown names",
			enabled: []string{" questionnaire ", "darkMode", ""},
			has:     []Feature{FeatureQuestionnaire},
			hasNot:  []Feature{FeatureAdmin},
		},
		{
			name:    "empty",
			enabled: nil,
			hasNot:  []Feature{FeatureQuestionnaire, FeatureAdmin, FeatureReports},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ParseFeatureSet(tt.enabled)
			for _, f := range tt.has {
				if !set.Has(f) {
					t.Errorf("feature %b should be enabled", f)
				}
			}
			for _, f := range tt.hasNot {
				if set.Has(f) {
					t.Errorf("feature %b should be disabled", f)
				}
			}
		})
	}
}

func TestFeatureSetNames(t *testing.T) {
	set := ParseFeatureSet([]string{"reports", "questionnaire"})
	names := set.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "questionnaire" || names[1] != "reports" {
		t.Errorf("Names = %v", names)
	}
}

func TestClientBrandingFeatures(t *testing.T) {
	b := ClientBranding{EnabledFeatures: "questionnaire, admin"}
	set := b.Features()
	if !set.Has(FeatureQuestionnaire) || !set.Has(FeatureAdmin) {
		t.Errorf("Features = %v", set.Names())
	}
	if set.Has(FeatureReports) {
		t.Error("reports should be disabled")
	}
}
