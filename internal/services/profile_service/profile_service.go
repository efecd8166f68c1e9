package services

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/logger/sl"

	"gopkg.in/yaml.v3"
)

// ProfileService serves the landing page document. It is read once at
// startup and never changes afterwards.
type ProfileService struct {
	log     *slog.Logger
	profile models.Profile
}

// New loads the profile at path. An empty path or a missing file yields an
// empty profile; a file that exists but does not parse is an error.
func New(log *slog.Logger, path string) (*ProfileService, error) {
	const op = "profile_service.New"
	log = log.With(
		slog.String("op", op),
		slog.String("path", path),
	)

	s := &ProfileService{log: log}

	if path == "" {
		log.Info("profile path not set, serving empty profile")
		s.profile = normalizeProfile(models.Profile{})
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("profile file not found, serving empty profile")
			s.profile = normalizeProfile(models.Profile{})
			return s, nil
		}
		log.Error("failed to read profile", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	profile, err := Parse(data)
	if err != nil {
		log.Error("failed to parse profile", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("profile loaded",
		slog.Int("experience", len(profile.Experience)),
		slog.Int("skill_categories", len(profile.Skills)),
	)

	s.profile = profile
	return s, nil
}

// Parse decodes a YAML profile document.
func Parse(data []byte) (models.Profile, error) {
	var profile models.Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return models.Profile{}, err
	}
	return normalizeProfile(profile), nil
}

func (s *ProfileService) Profile() models.Profile {
	return s.profile
}

func normalizeProfile(p models.Profile) models.Profile {
	if p.Skills == nil {
		p.Skills = []models.SkillCategory{}
	}
	for i := range p.Skills {
		if p.Skills[i].Skills == nil {
			p.Skills[i].Skills = []models.Skill{}
		}
	}
	if p.Experience == nil {
		p.Experience = []models.Experience{}
	}
	for i := range p.Experience {
		if p.Experience[i].Contributions == nil {
			p.Experience[i].Contributions = []string{}
		}
		if p.Experience[i].Technologies == nil {
			p.Experience[i].Technologies = []string{}
		}
	}
	if p.Education == nil {
		p.Education = []models.Education{}
	}
	if p.Activities == nil {
		p.Activities = []models.Activity{}
	}
	return p
}
