package questionnaire

import (
	"errors"
	"fmt"
	"testing"
)

func allSubjectIDs() map[SectionID]string {
	ids := make(map[SectionID]string, len(sectionOrder))
	for i, section := range sectionOrder {
		ids[section] = fmt.Sprintf("subject-%02d", i)
	}
	return ids
}

func TestFlattenSingleSection(t *testing.T) {
	responses := map[string]interface{}{
		"softSkills": map[string]interface{}{
			"criatividade": float64(4),
			"comunicacao":  float64(5),
		},
	}

	answers, err := Flatten(responses, allSubjectIDs())
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}

	// Keys are ordered lexicographically: comunicacao before criatividade.
	first := answers[0]
	if first.QuestionNumber != 1 {
		t.Errorf("first question number = %d, want 1", first.QuestionNumber)
	}
	if first.QuestionText != "softSkills: comunicacao" {
		t.Errorf("question text = %q, want %q", first.QuestionText, "softSkills: comunicacao")
	}
	if first.AnswerValue != "5" || first.AnswerScore != 5 {
		t.Errorf("answer value/score = %q/%v, want 5/5", first.AnswerValue, first.AnswerScore)
	}
	if !first.IsCorrect {
		t.Error("answer should be marked correct")
	}
	if first.TimeSpentSeconds != 30 {
		t.Errorf("time spent = %d, want 30", first.TimeSpentSeconds)
	}

	second := answers[1]
	if second.QuestionNumber != 2 || second.QuestionText != "softSkills: criatividade" {
		t.Errorf("second answer = %d %q", second.QuestionNumber, second.QuestionText)
	}
}

func TestFlattenNumberingContiguousAcrossSections(t *testing.T) {
	responses := map[string]interface{}{
		"copywriting": map[string]interface{}{
			"headlines": float64(3),
			"anuncios":  float64(2),
		},
		"brandingRebranding": map[string]interface{}{
			"identidadeVisual": map[string]interface{}{
				"logotipos": float64(5),
				"paletas":   float64(1),
			},
			"posicionamento": float64(4),
		},
		"softSkills": map[string]interface{}{
			"lideranca": float64(3),
		},
	}

	answers, err := Flatten(responses, allSubjectIDs())
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if len(answers) != 6 {
		t.Fatalf("expected 6 answers, got %d", len(answers))
	}
	for i, a := range answers {
		if a.QuestionNumber != i+1 {
			t.Errorf("answer %d has question number %d", i, a.QuestionNumber)
		}
	}

	// brandingRebranding comes before copywriting in section order; inside it
	// the subsection leaves keep their own lexicographic order.
	wantTexts := []string{
		"brandingRebranding: logotipos",
		"brandingRebranding: paletas",
		"brandingRebranding: posicionamento",
		"copywriting: anuncios",
		"copywriting: headlines",
		"softSkills: lideranca",
	}
	for i, want := range wantTexts {
		if answers[i].QuestionText != want {
			t.Errorf("answers[%d].QuestionText = %q, want %q", i, answers[i].QuestionText, want)
		}
	}
}

func TestFlattenDeterministic(t *testing.T) {
	responses := map[string]interface{}{
		"marketing": map[string]interface{}{
			"seo":      float64(2),
			"trafego":  float64(4),
			"conteudo": float64(3),
		},
		"arteDesign": map[string]interface{}{
			"ilustracao": float64(5),
		},
	}

	base, err := Flatten(responses, allSubjectIDs())
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := Flatten(responses, allSubjectIDs())
		if err != nil {
			t.Fatalf("Flatten returned error on run %d: %v", i, err)
		}
		for j := range base {
			if again[j] != base[j] {
				t.Fatalf("run %d diverged at answer %d: %+v != %+v", i, j, again[j], base[j])
			}
		}
	}
}

func TestFlattenSubjectClassification(t *testing.T) {
	ids := allSubjectIDs()
	responses := map[string]interface{}{
		"redacao":    map[string]interface{}{"ortografia": float64(4)},
		"softSkills": map[string]interface{}{"empatia": float64(3)},
	}

	answers, err := Flatten(responses, ids)
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if answers[0].SubjectID != ids[SectionRedacao] {
		t.Errorf("redacao answer classified to %q", answers[0].SubjectID)
	}
	if answers[1].SubjectID != ids[SectionSoftSkills] {
		t.Errorf("softSkills answer classified to %q", answers[1].SubjectID)
	}
}

func TestFlattenRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name      string
		responses map[string]interface{}
		wantErr   error
	}{
		{
			name: "unknown section",
			responses: map[string]interface{}{
				"astrologia": map[string]interface{}{"signos": float64(3)},
			},
			wantErr: ErrUnknownSection,
		},
		{
			name: "section is not an object",
			responses: map[string]interface{}{
				"softSkills": float64(3),
			},
			wantErr: ErrInvalidShape,
		},
		{
			name: "rating out of range",
			responses: map[string]interface{}{
				"softSkills": map[string]interface{}{"empatia": float64(6)},
			},
			wantErr: ErrInvalidRating,
		},
		{
			name: "rating below range",
			responses: map[string]interface{}{
				"softSkills": map[string]interface{}{"empatia": float64(0)},
			},
			wantErr: ErrInvalidRating,
		},
		{
			name: "non-integer rating",
			responses: map[string]interface{}{
				"softSkills": map[string]interface{}{"empatia": 3.5},
			},
			wantErr: ErrInvalidRating,
		},
		{
			name: "rating is a string",
			responses: map[string]interface{}{
				"softSkills": map[string]interface{}{"empatia": "alta"},
			},
			wantErr: ErrInvalidShape,
		},
		{
			name: "rating nested too deep",
			responses: map[string]interface{}{
				"softSkills": map[string]interface{}{
					"grupo": map[string]interface{}{
						"subgrupo": map[string]interface{}{"empatia": float64(3)},
					},
				},
			},
			wantErr: ErrInvalidShape,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers, err := Flatten(tt.responses, allSubjectIDs())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Flatten error = %v, want %v", err, tt.wantErr)
			}
			if answers != nil {
				t.Errorf("expected no partial result, got %d answers", len(answers))
			}
		})
	}
}

func TestFlattenEmptyResponses(t *testing.T) {
	answers, err := Flatten(map[string]interface{}{}, allSubjectIDs())
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if len(answers) != 0 {
		t.Errorf("expected no answers, got %d", len(answers))
	}
}

func TestFlattenMissingSubjectMapping(t *testing.T) {
	ids := allSubjectIDs()
	delete(ids, SectionSoftSkills)

	_, err := Flatten(map[string]interface{}{
		"softSkills": map[string]interface{}{"empatia": float64(3)},
	}, ids)
	if !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("Flatten error = %v, want %v", err, ErrUnknownSection)
	}
}

func TestFlattenAcceptsIntRatings(t *testing.T) {
	answers, err := Flatten(map[string]interface{}{
		"softSkills": map[string]interface{}{"empatia": 3},
	}, allSubjectIDs())
	if err != nil {
		t.Fatalf("Flatten returned error: %v", err)
	}
	if answers[0].AnswerScore != 3 {
		t.Errorf("answer score = %v, want 3", answers[0].AnswerScore)
	}
}
