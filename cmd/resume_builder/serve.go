package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveATSPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the account and form API server",
	Long:  `Start an HTTP server that exposes accounts and a per-account resume form, with PDF export and ATS analysis.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var serveATSCmd = &cobra.Command{
	Use:   "serve-ats",
	Short: "Start the ATS scoring service",
	Long:  `Start an HTTP server that scores uploaded or structured resumes against a job description with an LLM.`,
	Args:  cobra.NoArgs,
	RunE:  runServeATS,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveATSCmd.Flags().IntVar(&serveATSPort, "port", 5000, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(serveATSCmd)
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if appConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	srv, err := server.New(ctx, server.Config{
		Port:        servePort,
		DatabaseURL: appConfig.DatabaseURL,
		ATSEndpoint: appConfig.ATSEndpoint,
		ChromePath:  appConfig.ChromePath,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx, servePort)
}

func runServeATS(cmd *cobra.Command, _ []string) error {
	if appConfig.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	llmConfig := llm.DefaultConfig()
	if appConfig.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, appConfig.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, appConfig.APIKey)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	return server.StartScoring(ctx, serveATSPort, scoring.NewScorer(client))
}
