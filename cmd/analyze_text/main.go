package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/AI-Template-SDK/brand-visibility/internal/competitive"
	"github.com/AI-Template-SDK/brand-visibility/internal/config"
	"github.com/AI-Template-SDK/brand-visibility/internal/mentions"
)

// report is what analyze_text prints for one document
type report struct {
	Brand         string                     `json:"brand"`
	PolicyVersion string                     `json:"policy_version"`
	Analysis      mentions.MentionAnalysis   `json:"analysis"`
	Sentiment     string                     `json:"sentiment"`
	Positions     competitive.PositionResult `json:"positions"`
}

func newRootCmd() *cobra.Command {
	var (
		brand       string
		competitors []string
		file        string
	)

	cmd := &cobra.Command{
		Use:   "analyze_text",
		Short: "Score a brand's mentions in a piece of text",
		Long: "Reads a response from --file (or stdin) and prints the mention analysis\n" +
			"and the brand's position relative to competitors as JSON.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(brand) == "" {
				return fmt.Errorf("--brand is required")
			}

			var (
				data []byte
				err  error
			)
			if file != "" {
				data, err = os.ReadFile(file)
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			analyzer, err := config.Load().NewAnalyzer()
			if err != nil {
				return err
			}

			text := string(data)
			analysis := analyzer.Analyze(text, brand)
			out := report{
				Brand:         brand,
				PolicyVersion: analyzer.PolicyVersion(),
				Analysis:      analysis,
				Sentiment:     mentions.Label(analysis.SentimentScore),
				Positions:     competitive.LocateRelativePositions(text, brand, competitors),
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&brand, "brand", "b", "", "brand name to score")
	cmd.Flags().StringArrayVarP(&competitors, "competitor", "c", nil, "competitor name (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "file to analyze, stdin when empty")
	return cmd
}

func main() {
	// Scoring settings may also come from the environment
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
