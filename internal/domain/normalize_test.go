package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase words", "qa testing", "Qa Testing"},
		{"extra inner whitespace", "manual  testing", "Manual Testing"},
		{"leading and trailing space", "  react js  ", "React Js"},
		{"already normalized", "Backend Development", "Backend Development"},
		{"acronym tail preserved", "QA automation", "QA Automation"},
		{"single word", "docker", "Docker"},
		{"tabs and newlines", "unit\ttesting\nbasics", "Unit Testing Basics"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestCategoryFindSkill(t *testing.T) {
	cat := Category{
		Name: "Testing",
		Skills: []Skill{
			{SkillName: "Unit Testing", CourseDuration: "10"},
			{SkillName: "Load Testing", CourseDuration: "5", IsSkillDeleted: true},
		},
	}

	assert.Equal(t, 0, cat.FindSkill("Unit Testing", false))
	assert.Equal(t, 0, cat.FindSkill("Unit Testing", true))
	assert.Equal(t, 1, cat.FindSkill("Load Testing", false))
	// Deleted skills are invisible to active-only lookups.
	assert.Equal(t, -1, cat.FindSkill("Load Testing", true))
	assert.Equal(t, -1, cat.FindSkill("Missing", false))
}
