package utils

import (
	"testing"

	"tms/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizedUserCategory(t *testing.T) {
	cases := []struct {
		name string
		user models.User
		want string
	}{
		{"explicit citizen", models.User{UserCategory: "citizen"}, models.CategoryCitizen},
		{"explicit foreigner", models.User{UserCategory: "foreigner"}, models.CategoryForeigner},
		{"explicit wins over passport", models.User{UserCategory: "citizen", PassportNumber: "A123"}, models.CategoryCitizen},
		{"case and whitespace", models.User{UserCategory: " Foreigner "}, models.CategoryForeigner},
		{"passport implies foreigner", models.User{PassportNumber: "A123"}, models.CategoryForeigner},
		{"ic implies citizen", models.User{ICNumber: "900101-01-1234"}, models.CategoryCitizen},
		{"default citizen", models.User{}, models.CategoryCitizen},
		{"unknown value falls back to documents", models.User{UserCategory: "alien", PassportNumber: "A123"}, models.CategoryForeigner},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizedUserCategory(&tc.user), tc.name)
	}
}

func TestExtractYouTubeID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                      "dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ&t=10s":   "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://example.com/watch?v=dQw4w9WgXcQ":           "",
		"":                                                  "",
		"not a url at all":                                  "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, ExtractYouTubeID(raw), raw)
	}
}

func TestScoreColor(t *testing.T) {
	assert.Equal(t, "green", ScoreColor(80))
	assert.Equal(t, "green", ScoreColor(100))
	assert.Equal(t, "orange", ScoreColor(50))
	assert.Equal(t, "orange", ScoreColor(79.9))
	assert.Equal(t, "red", ScoreColor(49.9))
	assert.Equal(t, "red", ScoreColor(0))
}
