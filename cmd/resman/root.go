package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/resman"
)

const (
	envPrefix      = "RESMAN"
	configName     = "resman"
	keyPackage     = "package"
	keyExclude     = "exclude"
	keyVerbose     = "verbose"
	flagConfigFile = "config"
)

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "resman",
		Short: "Pack directories into resource packages and read files back",
		Long: `resman bundles a directory tree into one flat package file and serves
individual files back by their original path, falling back to the live
filesystem for paths that were not packed.

Settings are read from flags, then RESMAN_* environment variables, then a
resman.yaml (or .toml/.json) in the working directory or the file named by
--config.

Examples:
  resman pack ./assets -p assets.res
  resman ls -p assets.res
  resman cat -p assets.res textures/grass.png > grass.png`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, flagConfigFile, "", "config file (default is ./resman.yaml if present)")
	pf.StringP(keyPackage, "p", resman.DefaultPackageName, "package file to write or read")
	pf.BoolP(keyVerbose, "v", false, "enable debug logging")
	_ = a.v.BindPFlag(keyPackage, pf.Lookup(keyPackage))
	_ = a.v.BindPFlag(keyVerbose, pf.Lookup(keyVerbose))

	root.AddCommand(a.newPackCmd(), a.newCatCmd(), a.newLsCmd())
	return root
}

// setup loads configuration and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.AutomaticEnv()
	a.v.SetDefault(keyPackage, resman.DefaultPackageName)
	a.v.SetDefault(keyExclude, resman.DefaultExcludedExtensions())

	if err := a.readConfig(); err != nil {
		return err
	}

	level := log.InfoLevel
	if a.v.GetBool(keyVerbose) {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: configName,
	})
	a.logger = slog.New(handler)
	return nil
}

func (a *app) readConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
		return nil
	}

	a.v.SetConfigName(configName)
	a.v.AddConfigPath(".")
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// manager builds a Manager from the resolved configuration.
func (a *app) manager() *resman.Manager {
	return resman.New(
		resman.WithPackagePath(a.v.GetString(keyPackage)),
		resman.WithExcludedExtensions(a.v.GetStringSlice(keyExclude)...),
		resman.WithLogger(a.logger),
	)
}

// loadedManager builds a Manager and loads its package.
func (a *app) loadedManager() (*resman.Manager, error) {
	m := a.manager()
	stats, err := m.LoadStats()
	if err != nil {
		return nil, err
	}
	a.logger.Debug("package loaded", "path", m.PackagePath(), "chunks", stats.Chunks, "duplicates", stats.Duplicates)
	return m, nil
}
