package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/jobpost"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

var (
	analyzeJD       string
	analyzeJDFile   string
	analyzeJDURL    string
	analyzeBrowser  bool
	analyzeFile     string
	analyzeEndpoint string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score the resume against a job description",
	Long: "Sends the current form, or a PDF/DOCX file given with --file, to the ATS scoring service " +
		"and prints the score, feedback and matched keywords. A successful result is cached in the local store.",
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeJD, "jd", "", "Job description text")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd-file", "", "Path to a file holding the job description (ignored when --jd is set)")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "Job posting URL to fetch the description from (used when --jd and --jd-file are empty)")
	analyzeCmd.Flags().BoolVar(&analyzeBrowser, "browser", false, "Render the --jd-url page in headless Chrome when the static page has too little text")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "Resume file (PDF or DOCX) to analyze instead of the form")
	analyzeCmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "Scoring service URL (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	jd, err := jobDescription(analyzeJD, analyzeJDFile)
	if err != nil {
		return err
	}
	if jd == "" && analyzeJDURL != "" {
		fetcher := jobpost.NewFetcher(&jobpost.Options{Browser: analyzeBrowser, ChromePath: appConfig.ChromePath})
		posting, err := fetcher.Fetch(commandContext(cmd), analyzeJDURL)
		if err != nil {
			return err
		}
		jd = posting.Text
	}

	req := ats.Request{JobDescription: jd}
	if analyzeFile != "" {
		content, err := os.ReadFile(analyzeFile)
		if err != nil {
			return fmt.Errorf("failed to read resume file: %w", err)
		}
		req.File = &ats.Upload{Name: filepath.Base(analyzeFile), Data: content}
	}

	endpoint := analyzeEndpoint
	if endpoint == "" {
		endpoint = appConfig.ATSEndpoint
	}

	return withStore(cmd, func(ctx context.Context, store storage.Store) error {
		if req.File == nil {
			c, err := form.Open(ctx, store)
			if err != nil {
				return err
			}
			data := c.Data()
			req.Resume = &data
		}

		result, err := ats.NewRunner(ats.NewClient(endpoint, store)).Run(ctx, req)
		if err != nil {
			return err
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintAnalysis(result, ats.Rating(result.Score))
		return nil
	})
}

// jobDescription returns the inline text, or the content of path when text is empty.
func jobDescription(text, path string) (string, error) {
	if text != "" || path == "" {
		return text, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return string(content), nil
}
