// internal/models/models.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
	"github.com/google/uuid"
)

// AI platforms queried for brand visibility
const (
	PlatformChatGPT    = "chatgpt"
	PlatformClaude     = "claude"
	PlatformPerplexity = "perplexity"
)

// AllPlatforms lists every platform in the order they are searched
var AllPlatforms = []string{PlatformChatGPT, PlatformClaude, PlatformPerplexity}

// StringList is a list of strings stored as a JSON array column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("unsupported StringList source %T", src)
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	*l = list
	return nil
}

// Brand is a monitored brand and the competitors it is compared with
type Brand struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Industry    string     `db:"industry" json:"industry"`
	Website     string     `db:"website" json:"website"`
	Keywords    StringList `db:"keywords" json:"keywords"`
	Competitors StringList `db:"competitors" json:"competitors"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	CreatedAt   int64      `db:"created_at" json:"created_at"`
}

// PlatformResult is the answer of one AI platform to one query, with the
// brand analysis when the call succeeded
type PlatformResult struct {
	Platform   string                    `json:"platform"`
	Query      string                    `json:"query"`
	Response   string                    `json:"response"`
	Analysis   *mentions.MentionAnalysis `json:"brand_analysis,omitempty"`
	Success    bool                      `json:"success"`
	Error      string                    `json:"error,omitempty"`
	TokensUsed int                       `json:"tokens_used"`
	Cost       float64                   `json:"cost"`
	Note       string                    `json:"note,omitempty"`
	Cached     bool                      `json:"cached"`
	Timestamp  time.Time                 `json:"timestamp"`
}

// DirectMentions returns the brand's direct mention count, 0 without analysis
func (r *PlatformResult) DirectMentions() int {
	if r.Analysis == nil {
		return 0
	}
	return r.Analysis.DirectMentionCount
}

// SearchQuery is a stored platform response and its brand analysis
type SearchQuery struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BrandID         uuid.UUID `db:"brand_id" json:"brand_id"`
	QueryText       string    `db:"query_text" json:"query_text"`
	Platform        string    `db:"platform" json:"platform"`
	ResponseText    string    `db:"response_text" json:"response_text"`
	Analysis        string    `db:"analysis" json:"analysis"` // JSON encoded MentionAnalysis
	SentimentScore  float64   `db:"sentiment_score" json:"sentiment_score"`
	VisibilityScore float64   `db:"visibility_score" json:"visibility_score"`
	PolicyVersion   string    `db:"policy_version" json:"policy_version"`
	CreatedAt       int64     `db:"created_at" json:"created_at"`
}

// MentionRecord is a single brand mention found in a stored response
type MentionRecord struct {
	ID              uuid.UUID `db:"id" json:"id"`
	SearchQueryID   uuid.UUID `db:"search_query_id" json:"search_query_id"`
	BrandID         uuid.UUID `db:"brand_id" json:"brand_id"`
	Position        int       `db:"position" json:"position"`
	MentionType     string    `db:"mention_type" json:"mention_type"`
	Context         string    `db:"context" json:"context"`
	Sentiment       string    `db:"sentiment" json:"sentiment"` // positive, negative, neutral
	ConfidenceScore float64   `db:"confidence_score" json:"confidence_score"`
	CreatedAt       int64     `db:"created_at" json:"created_at"`
}

// DailyAnalytics holds the per day, per platform visibility metrics of a brand
type DailyAnalytics struct {
	ID                uuid.UUID `db:"id" json:"id"`
	BrandID           uuid.UUID `db:"brand_id" json:"brand_id"`
	Date              string    `db:"date" json:"date"` // YYYY-MM-DD
	Platform          string    `db:"platform" json:"platform"`
	TotalMentions     int       `db:"total_mentions" json:"total_mentions"`
	DirectMentions    int       `db:"direct_mentions" json:"direct_mentions"`
	IndirectMentions  int       `db:"indirect_mentions" json:"indirect_mentions"`
	VisibilityScore   float64   `db:"visibility_score" json:"visibility_score"`
	AvgSentimentScore float64   `db:"avg_sentiment_score" json:"avg_sentiment_score"`
	PositiveSentiment int       `db:"positive_sentiment" json:"positive_sentiment"`
	NegativeSentiment int       `db:"negative_sentiment" json:"negative_sentiment"`
	NeutralSentiment  int       `db:"neutral_sentiment" json:"neutral_sentiment"`
	CreatedAt         int64     `db:"created_at" json:"created_at"`
}

// CompetitorSnapshot holds the per day, per platform metrics of one competitor
type CompetitorSnapshot struct {
	ID              uuid.UUID `db:"id" json:"id"`
	BrandID         uuid.UUID `db:"brand_id" json:"brand_id"`
	CompetitorName  string    `db:"competitor_name" json:"competitor_name"`
	Date            string    `db:"date" json:"date"` // YYYY-MM-DD
	Platform        string    `db:"platform" json:"platform"`
	Mentions        int       `db:"mentions" json:"mentions"`
	VisibilityScore float64   `db:"visibility_score" json:"visibility_score"`
	AvgSentiment    float64   `db:"avg_sentiment" json:"avg_sentiment"`
	CreatedAt       int64     `db:"created_at" json:"created_at"`
}

// DateLayout is the layout of the date columns
const DateLayout = "2006-01-02"
