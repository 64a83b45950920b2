// Package actions contains the operations behind the non-run subcommands
package actions

import (
	"fmt"
	"io"

	"github.com/ethpandaops/robots-tester/internal/config"
)

// ShowConfig writes the configuration followed by whether it can drive a run
func ShowConfig(w io.Writer, cfg *config.AppConfig) error {
	if _, err := fmt.Fprintln(w, cfg.String()); err != nil {
		return err
	}

	status := "valid"
	if err := cfg.Validate(); err != nil {
		status = err.Error()
	}

	_, err := fmt.Fprintf(w, "\nStatus:            %s\n", status)
	return err
}
