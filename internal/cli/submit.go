package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldtrack/work-update-pipeline/internal/preprocess"
	"github.com/fieldtrack/work-update-pipeline/internal/submit"
	"github.com/fieldtrack/work-update-pipeline/pkg/runner"
	"github.com/fieldtrack/work-update-pipeline/pkg/update"
)

func newSubmitCmd() *cobra.Command {
	var (
		title       string
		description string
		targetRef   string
		category    string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "submit [flags] IMAGE...",
		Short: "Submit a work update with one or more images",
		Long: `Submit a photographed progress update to the tracking backend.

Images are uploaded concurrently to the asset store; the update record is
persisted once all uploads settle. Image arguments are resolved relative to
the configured image directory.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			r, err := runner.New(runner.Config{
				AssetBaseURL: cfg.AssetBaseURL,
				APIBaseURL:   cfg.APIBaseURL,
				ImageDir:     cfg.ImageDir,
				HTTPTimeout:  cfg.HTTPTimeout,
				Preprocess: preprocess.Options{
					MaxDimension: cfg.MaxDimension,
					JPEGQuality:  cfg.JPEGQuality,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to initialize runner: %w", err)
			}

			req := submit.Request{
				Title:       title,
				Description: description,
				Images:      args,
				Target: update.Target{
					Ref:      targetRef,
					Category: category,
				},
			}
			if verbose {
				req.Progress = func(key string, percent int) {
					fmt.Printf("  %s: %d%%\n", key, percent)
				}
			}

			record, err := r.Submit(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Work update submitted\n")
			if record.ID != "" {
				fmt.Printf("  ID: %s\n", record.ID)
			}
			fmt.Printf("  Target: %s/%s\n", record.Target.Category, record.Target.Ref)
			fmt.Printf("  Images: %d\n", len(record.Images))
			for _, url := range record.Images {
				fmt.Printf("    %s\n", url)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Update title (required)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Update description")
	cmd.Flags().StringVarP(&targetRef, "target", "r", "", "Entity the update attaches to (required)")
	cmd.Flags().StringVar(&category, "category", update.CategoryBasic, "Update category (basic, section, flat)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print per-image upload progress")

	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
