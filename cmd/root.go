/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/allbin/go-midi"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "midictl",
	Short: "Inspect and drive MIDI controllers",
	Long: `midictl talks to MIDI controllers through the Linux ALSA raw MIDI
interface (/dev/snd/midiC*D*).

Port selectors match a device path, a port name, an index from
'midictl list', or a case-insensitive part of the port name.

Settings can be given as flags, as MIDICTL_* environment variables, or in
$HOME/.midictl.yaml:

  output: X-TOUCH
  input: X-TOUCH
  global_channel: 10
  control_mode: 0
  led_mode: 1`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError("Command failed", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.midictl.yaml)")
	flags.StringP("output", "o", "", "Output port selector (default: first port)")
	flags.StringP("input", "i", "", "Input port selector")
	flags.Int("global-channel", 0, "Global MIDI channel (0-15)")
	flags.Int("control-mode", 0, "Control mode (0-5)")
	flags.Int("led-mode", 0, "LED mode (0 or 1)")
	flags.Duration("write-timeout", time.Second, "Timeout for each message sent")
	flags.Bool("debug", false, "Enable debug logging to stderr")

	for key, flag := range map[string]string{
		"output":         "output",
		"input":          "input",
		"global_channel": "global-channel",
		"control_mode":   "control-mode",
		"led_mode":       "led-mode",
		"write_timeout":  "write-timeout",
		"debug":          "debug",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".midictl")
	}

	viper.SetEnvPrefix("midictl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	setupLogging(viper.GetBool("debug"))

	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
	} else if cfgFile != "" {
		log.Warn().Err(err).Str("file", cfgFile).Msg("Could not read config file")
	}
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}
}

// connectionOptions turns the merged flag/env/file settings into library
// options. Device parameters are validated by the options themselves.
func connectionOptions(withInput bool) []midi.Option {
	opts := []midi.Option{
		midi.WithOutputPort(viper.GetString("output")),
		midi.WithGlobalChannel(viper.GetInt("global_channel")),
		midi.WithControlMode(viper.GetInt("control_mode")),
		midi.WithLedMode(viper.GetInt("led_mode")),
		midi.WithWriteTimeout(viper.GetDuration("write_timeout")),
	}
	if withInput {
		input := viper.GetString("input")
		if input == "" {
			input = viper.GetString("output")
		}
		// An empty selector would disable input
		if input == "" {
			input = "0"
		}
		opts = append(opts, midi.WithInputPort(input))
	}
	return opts
}

// openConnection connects using the configured transport and options
func openConnection(withInput bool) (*midi.Conn, error) {
	log.Debug().
		Str("output", viper.GetString("output")).
		Str("input", viper.GetString("input")).
		Bool("withInput", withInput).
		Msg("Opening MIDI connection")

	conn, err := midi.Open(connectionOptions(withInput)...)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("port", conn.OutputPort().Path).Msg("Connected")
	return conn, nil
}
