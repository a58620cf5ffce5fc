package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"exposurestats/internal/config"
	"exposurestats/internal/logger"
	"exposurestats/internal/service/ai"
)

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <image>",
		Short: "Tag one image with the AI tagger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.NewConsoleLogger()

			tagger, err := ai.NewGenAITagger(cmd.Context(), cfg.GenAIKey, cfg.GenAIModel, cfg.TagLabels)
			if err != nil {
				return err
			}

			result, err := ai.NewPipeline(cfg, log, tagger).TagImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Tags:            %s\n", strings.Join(result.Tags, ", "))
			fmt.Printf("Additional tags: %s\n", strings.Join(result.AdditionalTags, ", "))
			fmt.Printf("Explanation:     %s\n", result.Explanation)
			return nil
		},
	}
}
