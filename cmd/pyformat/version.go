package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ludo-technologies/pyformat/internal/version"
	"github.com/spf13/cobra"
)

// versionOutput selects how the build details are printed
type versionOutput struct {
	short  bool
	asJSON bool
}

func (o *versionOutput) write(w io.Writer) error {
	switch {
	case o.short:
		_, err := fmt.Fprintln(w, version.Short())
		return err
	case o.asJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(version.Details())
	default:
		_, err := fmt.Fprintln(w, version.Info())
		return err
	}
}

// NewVersionCmd creates the version command. Editor integrations call it
// with --json to check which pyformat build they drive.
func NewVersionCmd() *cobra.Command {
	out := &versionOutput{}
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the pyformat build",
		Long: `Print the pyformat release, the commit and date it was built from,
and the Go toolchain and platform of the binary.

Examples:
  pyformat version
  pyformat version --short
  pyformat version --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return out.write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&out.short, "short", "s", false, "Print the release number only")
	cmd.Flags().BoolVar(&out.asJSON, "json", false, "Print the build details as JSON")
	cmd.MarkFlagsMutuallyExclusive("short", "json")
	return cmd
}
