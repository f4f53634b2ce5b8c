package cmd

import (
	"fmt"

	"github.com/marzahner/markdown-viewer/internal/models"
	"github.com/spf13/cobra"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened files",
	RunE: func(cmd *cobra.Command, args []string) error {
		recent, err := models.LoadRecentFiles()
		if err != nil {
			return fmt.Errorf("failed to load recent files: %w", err)
		}
		if len(recent.Files) == 0 {
			fmt.Println("No recent files")
			return nil
		}
		for i, f := range recent.Files {
			fmt.Printf("%2d  %s  %s\n", i+1, f.OpenedAt.Format("2006-01-02 15:04"), f.Path)
		}
		return nil
	},
}

func init() {
	recentCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Clear the recent files list",
		RunE: func(cmd *cobra.Command, args []string) error {
			recent, err := models.LoadRecentFiles()
			if err != nil {
				return fmt.Errorf("failed to load recent files: %w", err)
			}
			recent.Clear()
			if err := recent.Save(); err != nil {
				return fmt.Errorf("failed to save recent files: %w", err)
			}
			fmt.Println("Recent files cleared")
			return nil
		},
	})
}
