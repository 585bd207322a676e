package domain

import (
	"net/url"
	"strings"
	"time"
)

// Document is an attachment of a study.
type Document struct {
	FileName     string `bson:"file_name,omitempty" json:"fileName,omitempty"`
	FileLocation string `bson:"file_location" json:"fileLocation"`
}

// IsLocal reports whether the attachment lives in the managed file area
// rather than behind an external URL.
func (d Document) IsLocal() bool {
	loc := strings.TrimSpace(d.FileLocation)
	if loc == "" {
		return false
	}
	if u, err := url.Parse(loc); err == nil && u.Scheme != "" {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(loc), "http")
}

type Study struct {
	ID           ResourceID `bson:"_id" json:"id"`
	Title        string     `bson:"title" json:"title"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	Genres       []string   `bson:"genres" json:"genres"`
	Approved     bool       `bson:"approved" json:"approved"`
	ResearcherID string     `bson:"researcher_id" json:"researcherId"`
	Documents    []Document `bson:"documents" json:"documents"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
}

// OwnedBy reports whether subjectID is the study's researcher.
func (s *Study) OwnedBy(subjectID string) bool {
	return subjectID != "" && s.ResearcherID == subjectID
}

// LocalDocuments returns the attachments stored in the managed file area.
func (s *Study) LocalDocuments() []Document {
	var out []Document
	for _, d := range s.Documents {
		if d.IsLocal() {
			out = append(out, d)
		}
	}
	return out
}
