// Command uanodeset exports declarative YAML address space models as
// NodeSet2 XML documents.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/uakit/nodeset-go/logging"
)

type rootOptions struct {
	Verbose bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "uanodeset",
		Short:        "OPC UA NodeSet2 XML export tooling",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug detail to stderr")
	cmd.AddCommand(newExportCommand(opts))
	return cmd
}

// debugFilter suppresses Debug entries unless verbose output is enabled.
// Warnings always pass through.
type debugFilter struct {
	logger  logging.Logger
	verbose bool
}

func (f debugFilter) Logf(c logging.Classification, format string, v ...interface{}) {
	if c == logging.Debug && !f.verbose {
		return
	}
	f.logger.Logf(c, format, v...)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
