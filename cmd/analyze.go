package cmd

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-checker/internal/logger"
)

const (
	PromptShowReport          = "Show report"
	PromptShowRecommendations = "Show recommendations"
	PromptShowSteps           = "Show analysis steps"
	PromptShowJSON            = "Show JSON"
	PromptSaveReport          = "Save report to file"
	PromptExit                = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowReport, PromptShowRecommendations, PromptShowSteps, PromptShowJSON, PromptSaveReport, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé, optionally against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		runAnalyze(cmd)
	},
}

type analyzeOptions struct {
	Resume      string
	Job         string
	Output      string
	Interactive bool
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the résumé (.txt, .md, .pdf, .html or - for stdin)")
	analyzeCmd.Flags().String("job", "", "path to the job description to match against (.txt, .md, .pdf, .html)")
	analyzeCmd.Flags().StringP("format", "f", "", "report format: text or json")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolP("interactive", "i", false, "open an interactive menu after the analysis")
	analyzeCmd.Flags().Bool("ai", false, "request an AI review of the résumé")

	analyzeCmd.MarkFlagRequired("resume")

	viper.BindPFlag("report.format", analyzeCmd.Flags().Lookup("format"))
	viper.BindPFlag("ai.enabled", analyzeCmd.Flags().Lookup("ai"))
}

// runAnalyze is the entry point of the analyze command.
func runAnalyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug("starting the analysis", zap.String("version", version))

	opts := analyzeOptions{
		Resume:      cmd.Flag("resume").Value.String(),
		Job:         cmd.Flag("job").Value.String(),
		Output:      cmd.Flag("output").Value.String(),
		Interactive: cmd.Flag("interactive").Value.String() == "true",
	}

	if err := analyze(ctx, config, opts, logger, os.Stdout); err != nil {
		if errors.Is(err, errExit) {
			return
		}
		logger.Fatal("exiting", zap.Error(err))
	}
}
