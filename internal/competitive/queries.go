package competitive

import (
	"fmt"

	"github.com/AI-Template-SDK/brand-visibility/internal/models"
)

const (
	maxBrandQueries          = 5
	maxCompetitiveQueries    = 8
	maxComparedCompetitors   = 3
	maxQueryKeywords         = 2
	competitorQueriesPerName = 2
)

// BrandQueries returns the monitoring queries for a brand: what the brand
// is, its industry, its keywords and its first competitor.
func BrandQueries(brand *models.Brand) []string {
	queries := []string{
		fmt.Sprintf("What is %s?", brand.Name),
		fmt.Sprintf("Tell me about %s", brand.Name),
	}

	if brand.Industry != "" {
		queries = append(queries,
			fmt.Sprintf("Best %s companies", brand.Industry),
			fmt.Sprintf("Top %s solutions", brand.Industry),
			fmt.Sprintf("Leading %s platforms", brand.Industry),
		)
	}

	for _, keyword := range firstN(brand.Keywords, maxQueryKeywords) {
		queries = append(queries,
			fmt.Sprintf("Best %s solutions", keyword),
			fmt.Sprintf("%s companies", keyword),
		)
	}

	if len(brand.Competitors) > 0 {
		queries = append(queries,
			fmt.Sprintf("Compare %s vs %s", brand.Name, brand.Competitors[0]),
			fmt.Sprintf("Alternatives to %s", brand.Competitors[0]),
		)
	}

	return firstN(queries, maxBrandQueries)
}

// CompetitiveQueries returns head-to-head, category and keyword queries that
// put the brand next to its competitors. year dates the category queries.
func CompetitiveQueries(brand *models.Brand, year int) []string {
	var queries []string

	for _, competitor := range firstN(brand.Competitors, maxComparedCompetitors) {
		queries = append(queries,
			fmt.Sprintf("%s vs %s", brand.Name, competitor),
			fmt.Sprintf("%s vs %s comparison", brand.Name, competitor),
			fmt.Sprintf("Alternative to %s", competitor),
		)
	}

	if brand.Industry != "" {
		queries = append(queries,
			fmt.Sprintf("Best %s platforms", brand.Industry),
			fmt.Sprintf("Top %s tools %d", brand.Industry, year),
			fmt.Sprintf("Leading %s solutions", brand.Industry),
		)
	}

	for _, keyword := range firstN(brand.Keywords, maxQueryKeywords) {
		queries = append(queries,
			fmt.Sprintf("Best %s tools", keyword),
			fmt.Sprintf("%s software comparison", keyword),
		)
	}

	return firstN(queries, maxCompetitiveQueries)
}

// CompetitorQueries returns the queries used to profile one competitor.
func CompetitorQueries(competitor string) []string {
	queries := []string{
		fmt.Sprintf("What is %s?", competitor),
		fmt.Sprintf("Tell me about %s", competitor),
		fmt.Sprintf("%s features and pricing", competitor),
		fmt.Sprintf("%s vs alternatives", competitor),
	}
	return queries[:competitorQueriesPerName]
}

func firstN(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
