package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user4815162342/monstorr/internal/creature"
	"github.com/user4815162342/monstorr/internal/data"
	"github.com/user4815162342/monstorr/internal/persistence"
	"github.com/user4815162342/monstorr/internal/rules"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "monstorr",
	Short: "Derive tabletop creature stat blocks from directive files",
	Long: `monstorr reads creature files, an ordered list of directives such as
Name("Goblin"), Small, Dex(14), Weapon(Scimitar), and derives the full stat
block: armor class, hit points, attacks, challenge rating and all the prose.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.monstorr.yaml)")
	flags.StringSlice("data-dirs", nil, "directories searched for creatures/ and templates/ before the bundled data")
	flags.StringP("format", "f", "plain", "output format: plain, markdown, json or terminal")
	flags.BoolP("verbose", "v", false, "log derivation details to stderr")
	flags.String("catalog-dir", "", "directory holding named catalogs (default is $HOME/.monstorr/catalogs)")
	flags.String("hp-rounding", "per-die", "hit point rounding: per-die or total")

	for key, flag := range map[string]string{
		"data_dirs":   "data-dirs",
		"format":      "format",
		"verbose":     "verbose",
		"catalog_dir": "catalog-dir",
		"hp_rounding": "hp-rounding",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".monstorr")
	}

	viper.SetEnvPrefix("monstorr")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
		}
	}
}

// newLogger builds the command logger: development output with --verbose,
// warnings only otherwise.
func newLogger() *zap.Logger {
	var cfg zap.Config
	if viper.GetBool("verbose") {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named("monstorr")
}

// environment is what every deriving command needs: the data loader and the
// interpreter options built from configuration.
type environment struct {
	logger *zap.Logger
	loader *data.Loader
	opts   []creature.Option
}

func newEnvironment() (*environment, error) {
	logger := newLogger()
	rounding, err := rules.ParseHitPointRounding(viper.GetString("hp_rounding"))
	if err != nil {
		return nil, err
	}
	loader := data.NewLoader(viper.GetStringSlice("data_dirs"), logger)
	return &environment{
		logger: logger,
		loader: loader,
		opts: []creature.Option{
			creature.WithResolver(loader),
			creature.WithTemplates(loader),
			creature.WithLogger(logger),
			creature.WithHitPointRounding(rounding),
		},
	}, nil
}

// source reads a creature file. "-" is standard input; a name that is not
// an existing file is looked up in the data directories and bundle.
func (e *environment) source(arg string, stdin io.Reader) (creature.Source, error) {
	if arg == "-" {
		text, err := io.ReadAll(stdin)
		if err != nil {
			return creature.Source{}, fmt.Errorf("failed to read standard input: %w", err)
		}
		return creature.Source{Name: "<stdin>.creature", Text: text}, nil
	}
	text, err := os.ReadFile(arg)
	if err == nil {
		return creature.Source{Name: arg, Text: text}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return creature.Source{}, err
	}
	src, lookupErr := e.loader.Resolve(arg)
	if lookupErr != nil {
		return creature.Source{}, fmt.Errorf("%s: not a file and %w", arg, lookupErr)
	}
	return src, nil
}

func catalogManager() *persistence.CatalogManager {
	dir := viper.GetString("catalog_dir")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dir = filepath.Join(home, ".monstorr", "catalogs")
	}
	return persistence.NewCatalogManager(dir)
}
