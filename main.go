package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/milk9111/podescape/common"
	"github.com/milk9111/podescape/prefabs"
)

// Config is the resolved run configuration. Flags win over PODESCAPE_*
// environment variables, which win over podescape.yaml.
type Config struct {
	Level       string
	Debug       bool
	LogLevel    string
	Watch       bool
	BaseMonitor bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "podescape",
		Short:        "Three prisoners, three pods, one way out",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	f := cmd.Flags()
	f.String("level", prefabs.DefaultLevel, "level file in prefabs/")
	f.Bool("debug", false, "enable debug mode (L skips the open pod)")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.Bool("watch", false, "restart the level when prefabs change on disk")
	f.BoolP("base-monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	_ = viper.BindPFlags(f)

	return cmd
}

func loadConfig() (Config, error) {
	viper.SetEnvPrefix("PODESCAPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("podescape")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}

	return Config{
		Level:       viper.GetString("level"),
		Debug:       viper.GetBool("debug"),
		LogLevel:    viper.GetString("log-level"),
		Watch:       viper.GetBool("watch"),
		BaseMonitor: viper.GetBool("base-monitor"),
	}, nil
}

func run(cfg Config) error {
	logger := common.NewLogger(os.Stderr, cfg.LogLevel)

	if cfg.BaseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("podescape")

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("start game")
		return err
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error().Err(err).Msg("run game")
		return err
	}
	return nil
}
