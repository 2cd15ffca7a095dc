package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/happyhackingspace/loglin"
	"github.com/happyhackingspace/loglin/internal/report"
)

func (c *CLI) newReportCommand() *cobra.Command {
	var (
		weightsPath string
		basic       bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Score a training file's rules under saved weights",
		Args:  cobra.ExactArgs(1),
		Example: `  loglin report grammar.txt --weights weights.json
  loglin report grammar.txt --weights weights.json --basic --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := report.LoadWeights(weightsPath)
			if err != nil {
				return err
			}
			slog.Debug("Weights loaded", "path", weightsPath, "dim", wf.Dim, "l2", wf.Lambda, "method", wf.Method)
			rows, err := loglin.Report(args[0], wf, basic)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), format, rows)
		},
	}

	cmd.Flags().StringVarP(&weightsPath, "weights", "w", "", "Weights file written by train --output")
	cmd.Flags().BoolVar(&basic, "basic", false, "Use one indicator feature per rule")
	cmd.Flags().StringVar(&format, "format", report.FormatText, "Output format: text, json or csv")
	_ = cmd.MarkFlagRequired("weights")
	return cmd
}
