package repository

import (
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"

	"github.com/r2c-platform/admin-backend/internal/studies/domain"
)

type seedFile struct {
	Studies []seedStudy `yaml:"studies"`
}

type seedStudy struct {
	ID           string         `yaml:"id"`
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	Genres       []string       `yaml:"genres"`
	Approved     bool           `yaml:"approved"`
	ResearcherID string         `yaml:"researcher_id"`
	Documents    []seedDocument `yaml:"documents"`
	CreatedAt    time.Time      `yaml:"created_at"`
}

type seedDocument struct {
	FileName     string `yaml:"file_name"`
	FileLocation string `yaml:"file_location"`
}

// LoadSeedFile reads studies for the in-memory store from a YAML file.
// A missing id gets a fresh ObjectID; ObjectID-shaped ids are kept native.
func LoadSeedFile(path string) ([]domain.Study, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return parseSeed(raw)
}

func parseSeed(raw []byte) ([]domain.Study, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]domain.Study, 0, len(f.Studies))
	for i, s := range f.Studies {
		id := domain.NewObjectResourceID(primitive.NewObjectID())
		if s.ID != "" {
			parsed, err := domain.ParseResourceID(s.ID)
			if err != nil {
				return nil, fmt.Errorf("seed study %d: %w", i, err)
			}
			id = parsed
		}

		docs := make([]domain.Document, 0, len(s.Documents))
		for _, d := range s.Documents {
			docs = append(docs, domain.Document{FileName: d.FileName, FileLocation: d.FileLocation})
		}

		created := s.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}

		out = append(out, domain.Study{
			ID:           id,
			Title:        s.Title,
			Description:  s.Description,
			Genres:       s.Genres,
			Approved:     s.Approved,
			ResearcherID: s.ResearcherID,
			Documents:    docs,
			CreatedAt:    created,
		})
	}
	return out, nil
}
