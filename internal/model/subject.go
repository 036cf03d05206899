package model

// Subject is a scoring category ("matéria"). Static reference data: every
// answer is classified to exactly one active subject.
//
// swagger:model Subject
type Subject struct {
	UUIDBase
	Name        string  `gorm:"size:255;unique;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Weight      float64 `gorm:"default:1" json:"weight"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`
}

func (Subject) TableName() string {
	return "subjects"
}
