package repository

import (
	"os"
	"regexp"
	"sync"
	"testing"

	"quest_nos_backend/internal/model"

	"gorm.io/gorm/schema"
)

// The DDL script ships separately from the migrated tables, so nothing at
// runtime catches a drifted column name until a view or routine errors in
// production. Cross-check every aliased column reference against the columns
// GORM actually derives from the models.
func TestSchemaScriptColumnsMatchModels(t *testing.T) {
	script, err := os.ReadFile("../../scripts/schema.sql")
	if err != nil {
		t.Fatalf("could not read schema script: %v", err)
	}

	aliases := map[string]interface{}{
		"aa": &model.AssessmentAnswer{},
		"a":  &model.Assessment{},
		"c":  &model.Candidate{},
		"s":  &model.Subject{},
		"u":  &model.AdminUser{},
	}

	cache := &sync.Map{}
	for alias, m := range aliases {
		sch, err := schema.Parse(m, cache, schema.NamingStrategy{})
		if err != nil {
			t.Fatalf("schema.Parse(%T): %v", m, err)
		}
		columns := make(map[string]bool, len(sch.DBNames))
		for _, name := range sch.DBNames {
			columns[name] = true
		}

		re := regexp.MustCompile(`\b` + alias + `\.(\w+)`)
		for _, match := range re.FindAllSubmatch(script, -1) {
			col := string(match[1])
			if !columns[col] {
				t.Errorf("schema.sql references %s.%s but %T has no column %q (has %v)",
					alias, col, m, col, sch.DBNames)
			}
		}
	}
}

// The script must provision everything the repositories call or scan.
func TestSchemaScriptDefinesViewsAndRoutines(t *testing.T) {
	script, err := os.ReadFile("../../scripts/schema.sql")
	if err != nil {
		t.Fatalf("could not read schema script: %v", err)
	}

	for _, object := range []string{
		"VIEW candidate_summary",
		"VIEW subject_performance",
		"VIEW assessment_detailed_report",
		"PROCEDURE calculate_assessment_score",
		"PROCEDURE verify_admin_login",
	} {
		if !regexp.MustCompile(regexp.QuoteMeta(object)).Match(script) {
			t.Errorf("schema.sql does not define %s", object)
		}
	}
}
