// Package cli holds the airdeck commands.
package cli

import (
	"fmt"

	"github.com/echocat/slf4g/native"
	"github.com/echocat/slf4g/native/facade/value"
	"github.com/echocat/slf4g/native/formatter"
	"github.com/spf13/cobra"

	"github.com/ayusman/airdeck/internal/config"
)

// Dependencies are resolved once the persistent flags are parsed.
type Dependencies struct {
	Config *config.Config
}

type rootFlags struct {
	configFile string
	logLevel   string
	logFormat  string
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "airdeck",
		Short: "Present slides with hand gestures",
		Long: "AirDeck shows a slide deck and follows one hand through the webcam: " +
			"two fingers point, one finger draws, three fingers erase, " +
			"the thumb goes forward and the pinky goes back.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(flags.logLevel, flags.logFormat); err != nil {
				return err
			}

			path := flags.configFile
			if path == "" {
				path = config.FilePath()
			}
			cfg, err := config.LoadFile(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			deps.Config = cfg
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default ~/.config/airdeck/config.toml)")
	pf.StringVar(&flags.logLevel, "log-level", "info", "log level: trace, debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(NewPresentCmd(deps))
	rootCmd.AddCommand(NewHistoryCmd(deps))
	rootCmd.AddCommand(NewSlidesCmd(deps))

	return rootCmd
}

func setupLogging(level, format string) error {
	lv := value.NewProvider(native.DefaultProvider)
	lv.Consumer.Formatter.Codec = value.MappingFormatterCodec{
		"text": formatter.NewText(func(v *formatter.Text) {
			bv := true
			v.MultiLineMessageAfterFields = &bv
		}),
		"json": formatter.NewJson(),
	}

	if err := lv.Level.Set(level); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if err := lv.Consumer.Formatter.Set(format); err != nil {
		return fmt.Errorf("invalid --log-format %q: %w", format, err)
	}
	return nil
}
