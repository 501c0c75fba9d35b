package cli

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/libpanel/pkg/detail"
	"github.com/matzehuels/libpanel/pkg/library"
	"github.com/matzehuels/libpanel/pkg/registry"
)

// showOptions holds flags for the show command.
type showOptions struct {
	plain   bool
	json    bool
	noCache bool
	refresh bool
}

// showCommand creates the show command for rendering a library record.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show [file|-]",
		Short: "Render the detail panel of a library record",
		Long: `Render the detail panel of a React Native Directory library record.

The record is read from a JSON file, or from stdin when the file is "-" or
omitted. By default an interactive panel opens and the npm author appears
once resolved; arrow keys select links and enter opens them in a browser.`,
		Example: `  # Interactive panel
  libpanel show reanimated.json

  # Print once, after the author lookup
  curl -s https://example.com/lib.json | libpanel show --plain -

  # Emit the panel as JSON for another host
  libpanel show --json reanimated.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return c.runShow(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print the panel once instead of opening the interactive view")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the panel as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the registry cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry answers")

	return cmd
}

func (c *CLI) runShow(cmd *cobra.Command, path string, opts showOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	lib, err := library.DecodeFile(path)
	if err != nil {
		return err
	}

	cfg, client, cc, err := c.newRegistryClient(ctx, registryOptions{noCache: opts.noCache})
	if err != nil {
		return err
	}
	defer cc.Close()
	dopts := cfg.detailOptions()

	if opts.plain || opts.json {
		spinner := newSpinnerWithContext(ctx, "Resolving author of "+lib.NpmPkg+"...")
		spinner.Start()
		done := startTimer(logger)
		st := registry.Resolve(ctx, client, lib.NpmPkg, opts.refresh)
		spinner.Stop()
		if st.Status == registry.StatusFailed {
			logger.Warn("author lookup failed", "pkg", lib.NpmPkg, "err", st.Err)
		} else {
			done("resolved author", "pkg", lib.NpmPkg)
		}

		panel := detail.NewPanel(lib, st.AuthorName(), dopts)
		if opts.json {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(panel)
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderPanel(panel, nil, 60))
		return nil
	}

	var program *tea.Program
	lookup := registry.NewLookup(client,
		registry.WithRefresh(opts.refresh),
		registry.WithLookupLogger(logger),
		registry.WithNotify(func(registry.State) {
			program.Send(lookupMsg{})
		}),
	)
	defer lookup.Close()

	opener := detail.NewBrowserOpener(logger, nil)
	model := NewPanelModel(ctx, lib, dopts, lookup, opener)
	program = tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
