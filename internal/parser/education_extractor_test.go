package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEducationExtractor_FullEntry(t *testing.T) {
	entries := NewEducationExtractor().Extract("Bachelor of Science, State University, 2019, GPA: 3.8")

	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "Bachelor's", e.Degree)
	assert.Equal(t, "State University", e.Institution)
	assert.Equal(t, "Science", e.Field)
	assert.Equal(t, "2019", e.EndDate)
	assert.Equal(t, "3.8", e.GPA)
}

func TestEducationExtractor_AbbreviatedDegree(t *testing.T) {
	entries := NewEducationExtractor().Extract("B.S. Computer Science, State University, 2019")

	require.Len(t, entries, 1)
	assert.Equal(t, "Bachelor's", entries[0].Degree)
	assert.Equal(t, "State University", entries[0].Institution)
	assert.Equal(t, "2019", entries[0].EndDate)
}

func TestEducationExtractor_DegreeLevels(t *testing.T) {
	cases := []struct {
		line   string
		degree string
	}{
		{"Ph.D. in Computer Science, MIT, 2020", "Ph.D."},
		{"Doctorate in Physics", "Ph.D."},
		{"Master of Business Administration, Harvard Business School", "Master's"},
		{"MBA, 2018", "Master's"},
		{"M.S. in Data Science", "Master's"},
		{"Bachelor's degree in Mathematics", "Bachelor's"},
		{"B.A. English Literature", "Bachelor's"},
		{"Associate degree in Nursing", "Associate"},
	}
	ext := NewEducationExtractor()
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			entries := ext.Extract(tc.line)
			require.Len(t, entries, 1)
			assert.Equal(t, tc.degree, entries[0].Degree)
		})
	}
}

func TestEducationExtractor_UnknownInstitution(t *testing.T) {
	entries := NewEducationExtractor().Extract("Master's in Data Science, 2021")

	require.Len(t, entries, 1)
	assert.Equal(t, "Unknown", entries[0].Institution, "分不出院校时用占位值")
	assert.Equal(t, "Data Science", entries[0].Field)
}

func TestEducationExtractor_UniversityOfForm(t *testing.T) {
	entries := NewEducationExtractor().Extract("Ph.D., University of Michigan, 2015")

	require.Len(t, entries, 1)
	assert.Equal(t, "University of Michigan", entries[0].Institution)
	assert.Empty(t, entries[0].Field, "院校名里的of不应被当作专业")
}

func TestEducationExtractor_InstitutionOnlyLine(t *testing.T) {
	entries := NewEducationExtractor().Extract("Stanford University 2010-2014")

	require.Len(t, entries, 1)
	assert.Equal(t, "Stanford University", entries[0].Institution)
	assert.Equal(t, "Unknown", entries[0].Degree)
	assert.Equal(t, "2010", entries[0].EndDate)
}

func TestEducationExtractor_MultipleEntries(t *testing.T) {
	text := `M.S. in Computer Science, Tech Institute, 2021
B.S. in Mathematics, State University, 2019`
	entries := NewEducationExtractor().Extract(text)

	require.Len(t, entries, 2)
	assert.Equal(t, "Master's", entries[0].Degree)
	assert.Equal(t, "Bachelor's", entries[1].Degree)
}

func TestEducationExtractor_NoEducation(t *testing.T) {
	entries := NewEducationExtractor().Extract("built microservices and deployed to production")
	assert.Empty(t, entries)
}

func TestEducationExtractor_EmptyInput(t *testing.T) {
	assert.Empty(t, NewEducationExtractor().Extract(""))
}
