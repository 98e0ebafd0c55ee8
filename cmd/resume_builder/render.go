package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/spf13/cobra"
)

var (
	renderTheme     string
	renderAllThemes bool
	renderOutDir    string
	renderHTML      bool
	renderParallel  int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume to PDF",
	Long: "Renders the current form in a theme (professional, creative or modern) and prints it to PDF " +
		"with a headless browser. The file is named after the resume's name.",
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderTheme, "theme", "t", "", "Theme to render (default from config)")
	renderCmd.Flags().BoolVar(&renderAllThemes, "all-themes", false, "Render one PDF per theme")
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "", "Output directory (default from config)")
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "Write the themed HTML instead of printing a PDF")
	renderCmd.Flags().IntVar(&renderParallel, "parallel", 2, "Maximum browsers running at once with --all-themes")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	themeName := renderTheme
	if themeName == "" {
		themeName = appConfig.Theme
	}
	theme, err := rendering.ParseTheme(themeName)
	if err != nil {
		return err
	}
	themes := []rendering.Theme{theme}
	if renderAllThemes {
		themes = rendering.Themes()
	}

	outDir := renderOutDir
	if outDir == "" {
		outDir = appConfig.OutputDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	return withStore(cmd, func(ctx context.Context, store storage.Store) error {
		c, err := form.Open(ctx, store)
		if err != nil {
			return err
		}
		data := c.Data()

		if renderHTML {
			for _, t := range themes {
				html, err := rendering.RenderHTML(data, t)
				if err != nil {
					return err
				}
				path := filepath.Join(outDir, outputName(data.Name, t, len(themes) > 1, ".html"))
				if err := os.WriteFile(path, []byte(html), 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		}

		renderer := rendering.NewChromeRenderer(appConfig.ChromePath)
		pdfs, err := rendering.RenderThemes(ctx, renderer, data, themes, renderParallel)
		if err != nil {
			return err
		}
		for _, t := range themes {
			path := filepath.Join(outDir, outputName(data.Name, t, len(themes) > 1, ".pdf"))
			if err := os.WriteFile(path, pdfs[t], 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s theme)\n", path, t.DisplayName())
		}
		return nil
	})
}

// outputName is the download filename, with the theme appended when several themes are written.
func outputName(name string, theme rendering.Theme, withTheme bool, ext string) string {
	base := strings.TrimSuffix(rendering.Filename(name), ".pdf")
	if withTheme {
		base += "_" + string(theme)
	}
	return base + ext
}
