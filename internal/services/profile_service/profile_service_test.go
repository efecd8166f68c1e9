package services

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `
name: Jun Park
headline: Backend engineer
bio: Builds data plumbing.
skills:
  - category: Languages
    skills:
      - name: Go
        icon: go.svg
      - name: SQL
experience:
  - id: acme
    company: Acme
    role: Engineer
    start_date: "2021-03"
    contributions:
      - Moved the content API to Go
education:
  - id: uni
    institution: State University
    degree: BSc
    start_date: "2015"
    end_date: "2019"
activities:
  - id: talk
    date: "2023-10"
    title: Meetup talk
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParse(t *testing.T) {
	profile, err := Parse([]byte(sampleProfile))
	require.NoError(t, err)

	assert.Equal(t, "Jun Park", profile.Name)
	require.Len(t, profile.Skills, 1)
	assert.Equal(t, "Languages", profile.Skills[0].Category)
	assert.Len(t, profile.Skills[0].Skills, 2)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "2021-03", profile.Experience[0].StartDate)
	assert.Equal(t, []string{"Moved the content API to Go"}, profile.Experience[0].Contributions)
	assert.NotNil(t, profile.Experience[0].Technologies)
	assert.Len(t, profile.Education, 1)
	assert.Len(t, profile.Activities, 1)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("name: [unterminated"))
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "profile.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(sampleProfile), 0o644))

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("skills: {"), 0o644))

	tests := []struct {
		name     string
		path     string
		wantName string
		wantErr  bool
	}{
		{name: "loads file", path: valid, wantName: "Jun Park"},
		{name: "empty path", path: ""},
		{name: "missing file", path: filepath.Join(dir, "nope.yaml")},
		{name: "broken file", path: broken, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(discardLogger(), tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}

			require.NoError(t, err)
			profile := s.Profile()
			assert.Equal(t, tt.wantName, profile.Name)
			assert.NotNil(t, profile.Skills)
			assert.NotNil(t, profile.Experience)
			assert.NotNil(t, profile.Education)
			assert.NotNil(t, profile.Activities)
		})
	}
}
