package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/dx/internal/domain"
	"github.com/spf13/cobra"
)

func newModuleCmd(app *app, opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "module",
		Aliases: []string{"modules"},
		Short:   "Manage saved module mappings",
		Long:    "Saved modules are loaded into imports.<name> whenever dx starts.",
	}

	cmd.AddCommand(
		newModuleAddCmd(app, opts),
		newModuleRemoveCmd(app),
		newModuleListCmd(app),
	)

	return cmd
}

func newModuleAddCmd(app *app, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <specifier>",
		Short: "Save a module mapping",
		Long: "Specifiers may be URLs, npm:<package>, jsr:<package>, @std/<module> " +
			"(shorthand for jsr:@std/<module>) or bare names found in the import map.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imports, err := app.importMap(opts.importMap)
			if err != nil {
				return err
			}

			presenter := app.presenter(cmd)
			result, err := app.moduleService(cmd).AddPersistent(cmd.Context(), args[0], args[1], imports)
			if err != nil {
				return err
			}
			if !result.Saved {
				return errors.New("module map could not be saved")
			}

			if result.Replaced {
				presenter.Warn(fmt.Sprintf("%s was mapped to %s", result.Entry.Name, result.Previous.URL))
			}
			presenter.Notice(fmt.Sprintf("Saved %s as %s", result.Entry.URL, result.Entry.Name))
			return nil
		},
	}
}

func newModuleRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a saved module mapping",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.moduleService(cmd).Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("%w: %s", domain.ErrModuleNotFound, args[0])
			}

			app.presenter(cmd).Notice(fmt.Sprintf("Removed %s", args[0]))
			return nil
		},
	}
}

type moduleJSON struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func newModuleListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved module mappings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modules := app.moduleService(cmd).List(cmd.Context())

			if asJSON {
				entries := make([]moduleJSON, 0, len(modules))
				for _, name := range modules.Names() {
					entries = append(entries, moduleJSON{Name: name, URL: modules[name].URL})
				}

				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			app.presenter(cmd).Modules(modules)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
