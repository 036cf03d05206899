package questionnaire

import (
	"fmt"
	"strings"

	"quest_nos_backend/internal/model"
)

// SectionID identifies one questionnaire step. The enumeration is closed: a
// submission carrying any other top-level key is rejected, and the mapping to
// subject names is validated against the active subject set at startup so a
// renamed subject fails boot instead of silently dropping answers.
type SectionID string

const (
	SectionBrandingRebranding        SectionID = "brandingRebranding"
	SectionCopywriting               SectionID = "copywriting"
	SectionRedacao                   SectionID = "redacao"
	SectionArteDesign                SectionID = "arteDesign"
	SectionMidiaSocial               SectionID = "midiaSocial"
	SectionLandingPages              SectionID = "landingPages"
	SectionPublicidade               SectionID = "publicidade"
	SectionMarketing                 SectionID = "marketing"
	SectionTecnologiaAutomacoes      SectionID = "tecnologiaAutomacoes"
	SectionHabilidadesComplementares SectionID = "habilidadesComplementares"
	SectionSoftSkills                SectionID = "softSkills"
)

// sectionOrder fixes the traversal order used when numbering questions.
var sectionOrder = []SectionID{
	SectionBrandingRebranding,
	SectionCopywriting,
	SectionRedacao,
	SectionArteDesign,
	SectionMidiaSocial,
	SectionLandingPages,
	SectionPublicidade,
	SectionMarketing,
	SectionTecnologiaAutomacoes,
	SectionHabilidadesComplementares,
	SectionSoftSkills,
}

var subjectNames = map[SectionID]string{
	SectionBrandingRebranding:        "Branding & Rebranding",
	SectionCopywriting:               "Copywriting",
	SectionRedacao:                   "Redação",
	SectionArteDesign:                "Arte & Design",
	SectionMidiaSocial:               "Mídia Social",
	SectionLandingPages:              "Landing Pages",
	SectionPublicidade:               "Publicidade",
	SectionMarketing:                 "Marketing",
	SectionTecnologiaAutomacoes:      "Tecnologia & Automações",
	SectionHabilidadesComplementares: "Habilidades Complementares",
	SectionSoftSkills:                "Soft Skills",
}

func Sections() []SectionID {
	out := make([]SectionID, len(sectionOrder))
	copy(out, sectionOrder)
	return out
}

// SubjectName returns the subject a section classifies to.
func SubjectName(id SectionID) (string, bool) {
	name, ok := subjectNames[id]
	return name, ok
}

// SubjectIDsBySection resolves the section mapping against the active subject
// set. Every section must resolve; missing subjects are reported by name.
func SubjectIDsBySection(active []model.Subject) (map[SectionID]string, error) {
	byName := make(map[string]string, len(active))
	for _, s := range active {
		byName[s.Name] = s.ID
	}

	out := make(map[SectionID]string, len(sectionOrder))
	var missing []string
	for _, section := range sectionOrder {
		name := subjectNames[section]
		id, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		out[section] = id
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("section mapping refers to inactive or missing subjects: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
