package model

// Term is a single glossary entry. The list fields are stored as JSON
// columns in the gorm backend and as plain arrays in the JSON data files.
type Term struct {
	ID         int      `gorm:"primaryKey;autoIncrement" json:"id"`
	Term       string   `gorm:"not null" json:"term"`
	Category   string   `gorm:"not null;index" json:"category"`
	Definition string   `gorm:"not null" json:"definition"`
	Aliases    []string `gorm:"serializer:json" json:"aliases"`
	Related    []string `gorm:"serializer:json" json:"related"`
	Tags       []string `gorm:"serializer:json" json:"tags"`
	References []string `gorm:"serializer:json" json:"references"`
	// LearningPaths maps a learning-path id to this term's position in
	// that path. Positions >= 1000 mean "unordered/appendix" placement.
	LearningPaths map[string]int `gorm:"serializer:json" json:"learningpaths,omitempty"`
}

func (Term) TableName() string {
	return "terms"
}

// Clone returns a deep copy so that callers can never mutate the store's
// canonical record through a returned pointer.
func (t *Term) Clone() *Term {
	if t == nil {
		return nil
	}
	c := *t
	c.Aliases = append([]string(nil), t.Aliases...)
	c.Related = append([]string(nil), t.Related...)
	c.Tags = append([]string(nil), t.Tags...)
	c.References = append([]string(nil), t.References...)
	if t.LearningPaths != nil {
		c.LearningPaths = make(map[string]int, len(t.LearningPaths))
		for k, v := range t.LearningPaths {
			c.LearningPaths[k] = v
		}
	}
	return &c
}

// Normalize replaces nil optional collections with empty ones. A term
// loaded from a hand-edited JSON file may omit any of them.
func (t *Term) Normalize() {
	if t.Aliases == nil {
		t.Aliases = []string{}
	}
	if t.Related == nil {
		t.Related = []string{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.References == nil {
		t.References = []string{}
	}
}

// CreateTermRequest is the request body for creating a term.
type CreateTermRequest struct {
	Term          string         `json:"term" validate:"required"`
	Category      string         `json:"category" validate:"required"`
	Definition    string         `json:"definition" validate:"required"`
	Aliases       []string       `json:"aliases"`
	Related       []string       `json:"related"`
	Tags          []string       `json:"tags"`
	References    []string       `json:"references"`
	LearningPaths map[string]int `json:"learningpaths"`
}

// UpdateTermRequest is a partial update: nil fields are left untouched,
// non-nil list fields replace the stored list entirely.
type UpdateTermRequest struct {
	Term          *string         `json:"term,omitempty" validate:"omitempty,min=1"`
	Category      *string         `json:"category,omitempty" validate:"omitempty,min=1"`
	Definition    *string         `json:"definition,omitempty" validate:"omitempty,min=1"`
	Aliases       *[]string       `json:"aliases,omitempty"`
	Related       *[]string       `json:"related,omitempty"`
	Tags          *[]string       `json:"tags,omitempty"`
	References    *[]string       `json:"references,omitempty"`
	LearningPaths *map[string]int `json:"learningpaths,omitempty"`
}

// Empty reports whether the update carries no fields at all.
func (r *UpdateTermRequest) Empty() bool {
	return r.Term == nil && r.Category == nil && r.Definition == nil &&
		r.Aliases == nil && r.Related == nil && r.Tags == nil &&
		r.References == nil && r.LearningPaths == nil
}
