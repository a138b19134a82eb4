package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user4815162342/monstorr/internal/directive"
	"github.com/user4815162342/monstorr/internal/statblock"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [file|name|-]...",
	Short: "Check creature files without printing them",
	Long: `Derives each creature and reports warnings (missing name or hit dice, duplicate
entries, multiattack problems, a challenge override far from the computed
rating) and errors. Exits non-zero when any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		out := cmd.OutOrStdout()
		failed := 0
		for _, arg := range args {
			src, err := env.source(arg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			ds, err := directive.Parse(src.Text, src.Name)
			if err != nil {
				fmt.Fprintf(out, "%s: error: %v\n", src.Name, err)
				failed++
				continue
			}
			report := statblock.Validate(ds, env.opts...)
			for _, w := range report.Warnings {
				fmt.Fprintf(out, "%s: warning: %s\n", src.Name, w)
			}
			if !report.OK() {
				fmt.Fprintf(out, "%s: error: %v\n", src.Name, report.Err)
				failed++
				continue
			}
			fmt.Fprintf(out, "%s: ok (%s, challenge %s)\n", src.Name, report.StatBlock.Name, report.StatBlock.Challenge)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
