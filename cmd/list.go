package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/user4815162342/monstorr/internal/persistence"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [catalog]",
	Short: "List catalog entries, catalogs or available creatures",
	Long: `Without flags, lists the entries of a catalog (default "default").
--catalogs lists the catalogs in the catalog directory and --creatures lists
the creature names that Include and derive can find.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if ok, _ := cmd.Flags().GetBool("creatures"); ok {
			env, err := newEnvironment()
			if err != nil {
				return err
			}
			names, err := env.loader.Creatures()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		}

		if ok, _ := cmd.Flags().GetBool("catalogs"); ok {
			names, err := catalogManager().List()
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		}

		name := "default"
		if len(args) == 1 {
			name = args[0]
		}
		store, err := catalogManager().Load(name)
		if err != nil {
			return err
		}
		defer store.Close()
		entries, err := store.Load()
		if err != nil {
			return err
		}
		return writeEntries(out, entries)
	},
}

// writeEntries prints one table row per catalog entry.
func writeEntries(w io.Writer, entries []persistence.Entry) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "SIZE", "TYPE", "CHALLENGE", "ID")
	for _, e := range entries {
		sb := e.StatBlock
		t.Row(sb.Name, sb.Size, sb.Type, sb.Challenge, e.ID)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("creatures", false, "list the creatures in the data directories and bundle")
	listCmd.Flags().Bool("catalogs", false, "list the catalogs")
}
