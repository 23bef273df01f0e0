/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/allbin/go-midi"
	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check device parameters without touching the device",
	Long: `Check the configured global channel, control mode and LED mode, and
any message channels given with --channel, against the ranges the device
accepts. Nothing is sent.

Examples:
  midictl validate
  midictl validate --global-channel 16
  midictl validate --channel 3 --channel 16`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		channels, _ := cmd.Flags().GetIntSlice("channel")

		results := validateSettings(
			viper.GetInt("global_channel"),
			viper.GetInt("control_mode"),
			viper.GetInt("led_mode"),
			channels,
		)

		failed := false
		for _, r := range results {
			if r.Err != nil {
				failed = true
				fmt.Printf("%s %-16s %s\n", styles.ErrorStyle.Render("✗"), r.Name, formatError(r.Err))
				continue
			}
			fmt.Printf("%s %-16s %d\n", styles.SuccessStyle.Render("✓"), r.Name, r.Value)
		}

		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntSlice("channel", nil, "Message channel(s) to check (0-15)")
}

type validationResult struct {
	Name  string
	Value int
	Err   error
}

func validateSettings(globalChannel, controlMode, ledMode int, channels []int) []validationResult {
	check := func(name string, value int, validate func(int) (int, error)) validationResult {
		_, err := validate(value)
		return validationResult{Name: name, Value: value, Err: err}
	}

	results := []validationResult{
		check("global channel", globalChannel, midi.ValidateGlobalChannel),
		check("control mode", controlMode, midi.ValidateControlMode),
		check("LED mode", ledMode, midi.ValidateLedMode),
	}
	for _, ch := range channels {
		results = append(results, check("message channel", ch, midi.ValidateMidiChannel))
	}
	return results
}
