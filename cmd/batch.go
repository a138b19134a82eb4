package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user4815162342/monstorr/internal/creature"
	"github.com/user4815162342/monstorr/internal/data"
	"github.com/user4815162342/monstorr/internal/statblock"
)

// batchResult is the outcome for one file. Exactly one of StatBlock and
// Err is set.
type batchResult struct {
	Path      string
	StatBlock *statblock.StatBlock
	Err       error
}

// creatureFiles lists the creature files under dir in sorted order.
func creatureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		for _, want := range data.CreatureExts {
			if ext == want {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// deriveAll derives every file with at most workers at a time. Each file
// gets its own interpreter. A failing file does not stop the others; only
// cancellation of ctx does. Results keep the order of files.
func deriveAll(ctx context.Context, files []string, workers int, opts []creature.Option, done func()) ([]batchResult, error) {
	results := make([]batchResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = deriveFile(path, opts)
			if done != nil {
				done()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func deriveFile(path string, opts []creature.Option) batchResult {
	text, err := os.ReadFile(path)
	if err != nil {
		return batchResult{Path: path, Err: err}
	}
	sb, err := statblock.DeriveSource(creature.Source{Name: path, Text: text}, opts...)
	return batchResult{Path: path, StatBlock: sb, Err: err}
}

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Derive every creature file under a directory",
	Long: `Derives all .creature and .yaml files under a directory in parallel and
appends the results to a catalog in file name order. Failures are reported
and do not stop the other files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newEnvironment()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		workers, _ := cmd.Flags().GetInt("workers")
		catalog, _ := cmd.Flags().GetString("catalog")

		files, err := creatureFiles(args[0])
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", args[0], err)
		}
		if len(files) == 0 {
			return fmt.Errorf("no creature files under %s", args[0])
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("Deriving"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		results, err := deriveAll(cmd.Context(), files, workers, env.opts, func() { _ = bar.Add(1) })
		if err != nil {
			return err
		}
		_ = bar.Finish()

		store, err := catalogManager().Open(catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		failed := 0
		for _, r := range results {
			if r.Err != nil {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
				continue
			}
			id, err := store.Append(r.Path, r.StatBlock)
			if err != nil {
				return fmt.Errorf("failed to record %s: %w", r.Path, err)
			}
			env.logger.Debug("Recorded", zap.String("path", r.Path), zap.String("id", id))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Derived %d of %d creatures into %s\n",
			len(results)-failed, len(results), catalogManager().Path(catalog))
		if failed > 0 {
			return fmt.Errorf("%d files failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Int("workers", runtime.NumCPU(), "number of creatures derived at once")
	batchCmd.Flags().String("catalog", "default", "catalog receiving the stat blocks (name or .jsonl path)")
}
