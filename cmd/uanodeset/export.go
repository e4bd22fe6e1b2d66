package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	nodeset "github.com/uakit/nodeset-go"
	"github.com/uakit/nodeset-go/logging"
	"github.com/uakit/nodeset-go/nodedef"
	"github.com/uakit/nodeset-go/xml"
)

type exportOptions struct {
	*rootOptions
	Model      string
	Output     string
	Namespaces []string
	Compact    bool
}

func newExportCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &exportOptions{rootOptions: rootOpts}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a YAML model as a NodeSet2 XML document",
		Long: `Export reads a declarative YAML model, builds the address space it
describes, and writes its nodes as a NodeSet2 XML document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Model, "file", "f", "", "model file to export")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringArrayVar(&opts.Namespaces, "namespace", nil, "namespace URI to include in the export table (repeatable)")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "write the document without indentation")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runExport(cmd *cobra.Command, opts *exportOptions) error {
	logger := debugFilter{
		logger:  logging.NewStandardLogger(cmd.ErrOrStderr()),
		verbose: opts.Verbose,
	}

	def, err := nodedef.LoadFile(opts.Model)
	if err != nil {
		return err
	}
	space, declared, err := def.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Model, err)
	}
	logger.Logf(logging.Debug, "loaded %d nodes from %s", len(declared), opts.Model)

	nodes := make([]nodeset.Node, len(declared))
	for i, n := range declared {
		nodes[i] = n
	}
	exporter := nodeset.New(space, space,
		nodeset.WithLogger(logger),
		nodeset.WithNamespaceURIs(opts.Namespaces...),
	)
	doc, err := exporter.Build(cmd.Context(), nodes)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		return writeDocument(cmd.OutOrStdout(), doc, opts.Compact)
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return err
	}
	if err := writeDocument(f, doc, opts.Compact); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Logf(logging.Debug, "wrote %s", opts.Output)
	return nil
}

func writeDocument(w io.Writer, doc *xml.Document, compact bool) error {
	enc := xml.NewEncoder(w)
	if !compact {
		enc.Indent("  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
