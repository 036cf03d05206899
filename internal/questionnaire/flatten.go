package questionnaire

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	ErrUnknownSection = errors.New("unknown questionnaire section")
	ErrInvalidRating  = errors.New("rating must be an integer between 1 and 5")
	ErrInvalidShape   = errors.New("unexpected questionnaire structure")
)

// Seconds-per-question estimate. Nothing measures this instrument-side; the
// value only feeds the best-effort time_spent_seconds column.
const estimatedSecondsPerQuestion = 30

// Answer is one flattened leaf rating, ready for persistence.
type Answer struct {
	SubjectID        string  `json:"subjectId"`
	QuestionNumber   int     `json:"questionNumber"`
	QuestionText     string  `json:"questionText"`
	AnswerValue      string  `json:"answerValue"`
	AnswerScore      float64 `json:"answerScore"`
	IsCorrect        bool    `json:"isCorrect"`
	TimeSpentSeconds int     `json:"timeSpentSeconds"`
}

// Flatten converts a nested questionnaire response (sections → optional
// subsections → leaf 1-5 ratings) into an ordered flat answer list. Question
// numbers form the contiguous sequence 1..N in section enumeration order with
// lexicographic key order inside each section. Every top-level key must be a
// known section and every section must resolve in subjectIDs; malformed input
// is a validation failure, nothing is partially returned.
func Flatten(responses map[string]interface{}, subjectIDs map[SectionID]string) ([]Answer, error) {
	for key := range responses {
		if _, ok := subjectNames[SectionID(key)]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSection, key)
		}
	}

	var answers []Answer
	number := 1

	for _, section := range sectionOrder {
		raw, ok := responses[string(section)]
		if !ok {
			continue
		}
		subjectID, ok := subjectIDs[section]
		if !ok {
			return nil, fmt.Errorf("%w: no subject for section %q", ErrUnknownSection, section)
		}

		node, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: section %q is not an object", ErrInvalidShape, section)
		}

		leaves, err := collectLeaves(string(section), node)
		if err != nil {
			return nil, err
		}

		for _, leaf := range leaves {
			answers = append(answers, Answer{
				SubjectID:        subjectID,
				QuestionNumber:   number,
				QuestionText:     fmt.Sprintf("%s: %s", section, leaf.key),
				AnswerValue:      strconv.Itoa(leaf.rating),
				AnswerScore:      float64(leaf.rating),
				IsCorrect:        leaf.rating > 0,
				TimeSpentSeconds: estimatedSecondsPerQuestion,
			})
			number++
		}
	}

	return answers, nil
}

type leaf struct {
	key    string
	rating int
}

// collectLeaves walks one section. Values are either leaf ratings or exactly
// one more level of named subsections holding leaf ratings.
func collectLeaves(section string, node map[string]interface{}) ([]leaf, error) {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var leaves []leaf
	for _, key := range keys {
		switch v := node[key].(type) {
		case map[string]interface{}:
			subKeys := make([]string, 0, len(v))
			for k := range v {
				subKeys = append(subKeys, k)
			}
			sort.Strings(subKeys)
			for _, subKey := range subKeys {
				rating, err := ratingOf(v[subKey])
				if err != nil {
					return nil, fmt.Errorf("%s.%s.%s: %w", section, key, subKey, err)
				}
				leaves = append(leaves, leaf{key: subKey, rating: rating})
			}
		default:
			rating, err := ratingOf(v)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", section, key, err)
			}
			leaves = append(leaves, leaf{key: key, rating: rating})
		}
	}
	return leaves, nil
}

func ratingOf(v interface{}) (int, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return 0, ErrInvalidShape
	}
	if f != math.Trunc(f) || f < 1 || f > 5 {
		return 0, ErrInvalidRating
	}
	return int(f), nil
}
