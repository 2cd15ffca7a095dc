package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/loglin"
	"github.com/happyhackingspace/loglin/internal/config"
	"github.com/happyhackingspace/loglin/internal/report"
)

func (c *CLI) newTrainCommand() *cobra.Command {
	var (
		configPath string
		outputPath string
		cfg        = config.Default()
	)

	cmd := &cobra.Command{
		Use:   "train <file>",
		Short: "Fit rule weights to a training file",
		Args:  cobra.ExactArgs(1),
		Example: `  loglin train grammar.txt --l2 0.1
  loglin train grammar.txt --basic --method lbfgs --output weights.json
  loglin train grammar.txt --config train.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				fileCfg, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = mergeFlags(cmd, cfg, fileCfg)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			slog.Info("Training", "file", args[0], "l2", cfg.Lambda, "method", cfg.Method, "basic", cfg.Basic)
			start := time.Now()
			res, err := loglin.Train(args[0], &loglin.TrainConfig{
				Lambda:            cfg.Lambda,
				Method:            cfg.Method,
				MaxIterations:     cfg.MaxIterations,
				GradientThreshold: cfg.GradientThreshold,
				Basic:             cfg.Basic,
			})
			if err != nil {
				return err
			}
			slog.Debug("Training completed", "duration", time.Since(start), "records", res.Records, "dim", res.Model.Dim())

			if err := writeResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Format, res); err != nil {
				return err
			}
			if outputPath != "" {
				if err := report.SaveWeights(res.Weights(), outputPath); err != nil {
					return err
				}
				slog.Info("Weights saved", "path", outputPath)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&cfg.Lambda, "l2", cfg.Lambda, "L2 regularization coefficient")
	cmd.Flags().BoolVar(&cfg.Basic, "basic", cfg.Basic, "Use one indicator feature per rule and ignore the feature column")
	cmd.Flags().StringVar(&cfg.Method, "method", cfg.Method, "Minimization method (see loglin.Methods)")
	cmd.Flags().IntVar(&cfg.MaxIterations, "max-iter", cfg.MaxIterations, "Maximum major iterations, 0 for the method default")
	cmd.Flags().StringVar(&cfg.Format, "format", cfg.Format, "Output format: text, json or csv")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the fitted weights as JSON to this path")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML file with training settings")
	return cmd
}

// mergeFlags returns the file config with every explicitly set flag applied
// on top of it.
func mergeFlags(cmd *cobra.Command, flags, file config.Config) config.Config {
	merged := file
	fs := cmd.Flags()
	if fs.Changed("l2") {
		merged.Lambda = flags.Lambda
	}
	if fs.Changed("basic") {
		merged.Basic = flags.Basic
	}
	if fs.Changed("method") {
		merged.Method = flags.Method
	}
	if fs.Changed("max-iter") {
		merged.MaxIterations = flags.MaxIterations
	}
	if fs.Changed("format") {
		merged.Format = flags.Format
	}
	return merged
}

// writeResult writes the rule table to out. Text output carries the
// optimizer summary inline; machine formats send it to diag so out stays
// parseable.
func writeResult(out, diag io.Writer, format string, res *loglin.Result) error {
	summaryTo := out
	if format != report.FormatText {
		summaryTo = diag
	}
	if err := report.WriteSummary(summaryTo, res.Summary()); err != nil {
		return err
	}
	return report.Write(out, format, res.Rows())
}
