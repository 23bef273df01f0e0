/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/allbin/go-midi"
	"github.com/allbin/go-midi/internal/tui/styles"
	"github.com/rs/zerolog/log"
)

// formatError renders err for the terminal. MIDI errors use the
// "{category} error: {message}" form with the category highlighted.
func formatError(err error) string {
	var e midi.Error
	if errors.As(err, &e) {
		category, message := e.Render()
		return fmt.Sprintf("%s error: %s", styles.CategoryStyle.Render(category), message)
	}
	return err.Error()
}

// exitWithError reports err on stderr and exits with status 1
func exitWithError(context string, err error) {
	event := log.Error().Err(err)
	var e midi.Error
	if errors.As(err, &e) {
		event = event.Stringer("kind", e.Kind())
		if cause := e.Cause(); cause != nil {
			event = event.AnErr("cause", cause)
		}
	}
	event.Msg(context)

	fmt.Fprintf(os.Stderr, "%s %s\n", styles.ErrorStyle.Render("✗"), formatError(err))
	os.Exit(1)
}
