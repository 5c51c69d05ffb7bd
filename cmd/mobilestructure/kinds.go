package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"go.eggybyte.com/mobilestructure/internal/templates"
	"go.eggybyte.com/mobilestructure/internal/ui"
)

type kindInfo struct {
	Kind        string   `json:"kind"`
	DisplayName string   `json:"display_name"`
	Summary     string   `json:"summary"`
	Directories []string `json:"directories"`
	Files       []string `json:"files"`
}

func newKindsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the supported project types",
		Long: `List the project types that create --type accepts, with the
directories and files each one generates.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := templates.Load()
			if err != nil {
				return err
			}
			return listKinds(cmd, catalog, a.settings != nil && a.settings.Verbose)
		},
	}
}

// listKinds writes the supported kinds as a table or JSON.
//
// Parameters:
//   - cmd: Cobra command, its output receives the table
//   - catalog: Layout table
//   - detailed: Also list directories and files
//
// Returns:
//   - error: Write error if any
//
// Concurrency:
//   - Single-threaded
//
// Performance:
//   - O(n) in the size of the layout table
func listKinds(cmd *cobra.Command, catalog *templates.Catalog, detailed bool) error {
	layouts := catalog.Layouts()

	infos := make([]kindInfo, 0, len(layouts))
	for _, l := range layouts {
		info := kindInfo{
			Kind:        l.Kind,
			DisplayName: l.DisplayName,
			Summary:     l.Summary,
			Directories: l.DirectoryPaths(),
		}
		for _, f := range l.Files {
			info.Files = append(info.Files, f.Path)
		}
		infos = append(infos, info)
	}

	if ui.JSONOutput() {
		ui.Result(infos, "%d project types available", len(infos))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tDESCRIPTION")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Kind, info.DisplayName, info.Summary)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if detailed {
		for _, info := range infos {
			ui.List(info.DisplayName+" directories", info.Directories)
			ui.List(info.DisplayName+" files", info.Files)
		}
	}
	return nil
}
