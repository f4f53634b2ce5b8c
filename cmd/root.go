package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/marzahner/markdown-viewer/internal/document"
	"github.com/marzahner/markdown-viewer/internal/models"
	"github.com/marzahner/markdown-viewer/internal/ui"
	"github.com/spf13/cobra"
)

var noWatch bool

func init() {
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Disable live reload when the file changes on disk")
	rootCmd.AddCommand(recentCmd)
}

var rootCmd = &cobra.Command{
	Use:   "markdown-viewer [file]",
	Short: "View markdown files in the terminal",
	Long: `markdown-viewer renders a markdown file as styled text in the terminal.

With no argument it reopens the most recently viewed file.

Examples:
  markdown-viewer README.md
  markdown-viewer notes.md --no-watch
  markdown-viewer recent          # list recently opened files`,
	Args:              cobra.MaximumNArgs(1),
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, err := models.LoadRecentFiles()
		if err != nil {
			log.Printf("Failed to load recent files: %v", err)
			recent = &models.RecentFiles{}
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			if len(recent.Files) == 0 {
				return fmt.Errorf("no file given and no recent files to reopen")
			}
			path = recent.Files[0].Path
		}

		// A file that cannot be read or decoded is still shown, as a
		// single paragraph carrying the error message
		doc, err := document.Load(path)
		if err != nil {
			doc = document.ErrorDocument(path, err)
		} else {
			recent.Add(path)
			if err := recent.Save(); err != nil {
				log.Printf("Failed to save recent files: %v", err)
			}
		}

		setupLogging()

		app := ui.NewApp(doc, recent)
		if noWatch {
			app.DisableWatch()
		}
		return app.Run()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging redirects the standard logger to a file so nothing writes
// to the terminal while the tcell screen owns it
func setupLogging() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.SetOutput(os.Stderr)
		return
	}
	dir := filepath.Join(configDir, "markdown-viewer")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "viewer.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	log.SetOutput(f)
}
