package competitive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/models"
)

func TestBrandQueries(t *testing.T) {
	tests := []struct {
		name  string
		brand *models.Brand
		want  []string
	}{
		{
			name:  "name only",
			brand: &models.Brand{Name: "Acme"},
			want:  []string{"What is Acme?", "Tell me about Acme"},
		},
		{
			name:  "industry fills the cap",
			brand: &models.Brand{Name: "Acme", Industry: "CRM", Keywords: models.StringList{"sales"}},
			want: []string{
				"What is Acme?",
				"Tell me about Acme",
				"Best CRM companies",
				"Top CRM solutions",
				"Leading CRM platforms",
			},
		},
		{
			name:  "keywords and competitors",
			brand: &models.Brand{Name: "Acme", Keywords: models.StringList{"sales"}, Competitors: models.StringList{"Globex"}},
			want: []string{
				"What is Acme?",
				"Tell me about Acme",
				"Best sales solutions",
				"sales companies",
				"Compare Acme vs Globex",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, competitive.BrandQueries(tt.brand))
		})
	}
}

func TestCompetitiveQueries(t *testing.T) {
	brand := &models.Brand{
		Name:        "Acme",
		Industry:    "CRM",
		Competitors: models.StringList{"Globex", "Initech", "Hooli", "Umbrella"},
	}

	queries := competitive.CompetitiveQueries(brand, 2026)

	assert.Len(t, queries, 8)
	assert.Equal(t, "Acme vs Globex", queries[0])
	assert.Equal(t, "Alternative to Globex", queries[2])
	assert.Equal(t, "Acme vs Initech comparison", queries[4])
	assert.Equal(t, "Acme vs Hooli", queries[6])
	assert.NotContains(t, queries, "Alternative to Hooli")
	assert.NotContains(t, queries, "Acme vs Umbrella")

	small := competitive.CompetitiveQueries(&models.Brand{Name: "Acme", Industry: "CRM"}, 2026)
	assert.Equal(t, []string{"Best CRM platforms", "Top CRM tools 2026", "Leading CRM solutions"}, small)
}

func TestCompetitorQueries(t *testing.T) {
	assert.Equal(t, []string{"What is Globex?", "Tell me about Globex"}, competitive.CompetitorQueries("Globex"))
}
