package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user4815162342/monstorr/internal/statblock"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view [file|name]...",
	Short: "Browse stat blocks in the terminal",
	Long: `Opens a full screen viewer over the given creatures, or over every entry
of a catalog with --catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, _ := cmd.Flags().GetString("catalog")
		if catalog == "" && len(args) == 0 {
			return fmt.Errorf("nothing to view: pass creatures or --catalog")
		}

		env, err := newEnvironment()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		var blocks []*statblock.StatBlock
		if catalog != "" {
			store, err := catalogManager().Load(catalog)
			if err != nil {
				return err
			}
			entries, err := store.Load()
			store.Close()
			if err != nil {
				return err
			}
			for _, e := range entries {
				blocks = append(blocks, e.StatBlock)
			}
		}
		for _, arg := range args {
			src, err := env.source(arg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			sb, err := statblock.DeriveSource(src, env.opts...)
			if err != nil {
				return err
			}
			blocks = append(blocks, sb)
		}
		if len(blocks) == 0 {
			return fmt.Errorf("catalog %s is empty", catalog)
		}
		return RunViewer(blocks)
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().String("catalog", "", "view the entries of this catalog")
}
