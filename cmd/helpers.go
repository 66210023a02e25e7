package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"envault/internal/ui"
)

// startSpinner creates and starts a spinner with the given message when not
// in verbose or debug mode. Returns the spinner and a function that should
// be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines; the cleanup
// function calls ui.EnsureNewline on the final message before printing it.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without a colored spinner if it fails.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Discard log output unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
