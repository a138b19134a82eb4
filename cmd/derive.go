package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/user4815162342/monstorr/internal/render"
	"github.com/user4815162342/monstorr/internal/statblock"
)

// deriveCmd represents the derive command
var deriveCmd = &cobra.Command{
	Use:   "derive [file|name|-]...",
	Short: "Derive and print stat blocks",
	Long: `Derives each creature file and prints its stat block in the configured
format. An argument that is not a file is looked up as a creature name in the
data directories and the bundled creatures; "-" reads standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		renderer, err := render.New(viper.GetString("format"))
		if err != nil {
			return err
		}

		catalog, _ := cmd.Flags().GetString("catalog")
		var blocks []*statblock.StatBlock
		var sources []string
		for i, arg := range args {
			src, err := env.source(arg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			sb, err := statblock.DeriveSource(src, env.opts...)
			if err != nil {
				return err
			}
			env.logger.Debug("Derived", zap.String("source", src.Name), zap.String("challenge", sb.Challenge))
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			if err := renderer.Render(cmd.OutOrStdout(), sb); err != nil {
				return err
			}
			blocks = append(blocks, sb)
			sources = append(sources, src.Name)
		}

		if catalog == "" {
			return nil
		}
		store, err := catalogManager().Open(catalog)
		if err != nil {
			return err
		}
		defer store.Close()
		for i, sb := range blocks {
			if _, err := store.Append(sources[i], sb); err != nil {
				return fmt.Errorf("failed to record %s: %w", sb.Name, err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().String("catalog", "", "also append the stat blocks to this catalog (name or .jsonl path)")
}
