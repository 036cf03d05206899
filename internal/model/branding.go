package model

import "strings"

// Feature is a white-label capability. The enabled set is parsed once from
// storage/config into a bitset instead of being queried by string key at
// arbitrary call sites.
type Feature uint8

const (
	FeatureQuestionnaire Feature = 1 << iota
	FeatureAdmin
	FeatureReports
	FeaturePersonalPresentation
	FeatureAboutPage
)

var featureNames = map[string]Feature{
	"questionnaire":        FeatureQuestionnaire,
	"admin":                FeatureAdmin,
	"reports":              FeatureReports,
	"personalPresentation": FeaturePersonalPresentation,
	"aboutPage":            FeatureAboutPage,
}

// FeatureSet is an immutable capability bitset evaluated once at load time.
type FeatureSet uint8

func ParseFeatureSet(enabled []string) FeatureSet {
	var set FeatureSet
	for _, name := range enabled {
		if f, ok := featureNames[strings.TrimSpace(name)]; ok {
			set |= FeatureSet(f)
		}
	}
	return set
}

func (s FeatureSet) Has(f Feature) bool {
	return s&FeatureSet(f) != 0
}

func (s FeatureSet) Names() []string {
	names := make([]string, 0, len(featureNames))
	for name, f := range featureNames {
		if s.Has(f) {
			names = append(names, name)
		}
	}
	return names
}

// ClientBranding is one white-label configuration row; exactly one row is
// active at a time and the enabled feature list is stored as a comma separated
// set parsed via ParseFeatureSet.
//
// swagger:model ClientBranding
type ClientBranding struct {
	UUIDBase
	CompanyName      string `gorm:"size:255;not null" json:"companyName"`
	Tagline          string `gorm:"size:500" json:"tagline,omitempty"`
	Description      string `gorm:"type:text" json:"description,omitempty"`
	LogoURL          string `gorm:"size:500" json:"logoUrl,omitempty"`
	FaviconURL       string `gorm:"size:500" json:"faviconUrl,omitempty"`
	PrimaryColor     string `gorm:"size:20" json:"primaryColor"`
	SecondaryColor   string `gorm:"size:20" json:"secondaryColor"`
	AccentColor      string `gorm:"size:20" json:"accentColor"`
	ContactEmail     string `gorm:"size:255" json:"contactEmail,omitempty"`
	ContactPhone     string `gorm:"size:50" json:"contactPhone,omitempty"`
	ContactAddress   string `gorm:"size:500" json:"contactAddress,omitempty"`
	ContactWebsite   string `gorm:"size:500" json:"contactWebsite,omitempty"`
	LegalCompanyName string `gorm:"size:255" json:"legalCompanyName,omitempty"`
	CompanyDocument  string `gorm:"size:50" json:"companyDocument,omitempty"`
	HeroTitle        string `gorm:"size:500" json:"heroTitle"`
	HeroSubtitle     string `gorm:"size:500" json:"heroSubtitle"`
	EnabledFeatures  string `gorm:"size:255" json:"enabledFeatures"`
	IsActive         bool   `gorm:"default:true" json:"isActive"`
}

func (ClientBranding) TableName() string {
	return "client_branding"
}

func (b *ClientBranding) Features() FeatureSet {
	return ParseFeatureSet(strings.Split(b.EnabledFeatures, ","))
}
