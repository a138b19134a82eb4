package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user4815162342/monstorr/internal/dice"
)

// rollCmd represents the roll command
var rollCmd = &cobra.Command{
	Use:   "roll <expression>...",
	Short: "Roll dice expressions such as 2d6 + 3",
	Long: `Parses each argument as a dice expression, prints its canonical form and
average, then rolls it. --times repeats the roll.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		times, _ := cmd.Flags().GetInt("times")
		useCrypto, _ := cmd.Flags().GetBool("crypto")

		var roller dice.Roller = &dice.ToolkitRoller{}
		if useCrypto {
			roller = &dice.CryptoRoller{}
		}

		out := cmd.OutOrStdout()
		for _, arg := range args {
			expr, err := dice.Parse(arg)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s (average %s)\n", expr, expr.Average().FloatString(1))
			for i := 0; i < times; i++ {
				res := expr.Roll(roller)
				fmt.Fprintf(out, "  %d %s\n", res.Total, formatRolls(res.RawRolls))
			}
			if err := rollErr(roller); err != nil {
				return fmt.Errorf("roll failed: %w", err)
			}
		}
		return nil
	},
}

// rollErr returns the first error a roller recorded.
func rollErr(r dice.Roller) error {
	switch r := r.(type) {
	case *dice.ToolkitRoller:
		return r.Err
	case *dice.CryptoRoller:
		return r.Err
	}
	return nil
}

func formatRolls(rolls []int) string {
	parts := make([]string, len(rolls))
	for i, r := range rolls {
		parts[i] = fmt.Sprint(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rollCmd.Flags().IntP("times", "n", 1, "number of rolls")
	rollCmd.Flags().Bool("crypto", false, "roll with crypto/rand instead of the rpg-toolkit roller")
}
