package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/matzehuels/libpanel/pkg/registry"
)

// lookupOptions holds flags for the lookup command.
type lookupOptions struct {
	json    bool
	noCache bool
	refresh bool
}

// lookupCommand creates the lookup command for resolving a package author.
func (c *CLI) lookupCommand() *cobra.Command {
	var opts lookupOptions

	cmd := &cobra.Command{
		Use:   "lookup <npm-package>",
		Short: "Resolve the author of an npm package",
		Long: `Resolve the author of an npm package from its latest registry document.

A package the registry does not know is not an error: it simply has no
author. Only network failures and unreadable registry answers fail.`,
		Example: `  libpanel lookup react-native-reanimated
  libpanel lookup @react-navigation/native --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLookup(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the registry cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached registry answers")

	return cmd
}

func (c *CLI) runLookup(cmd *cobra.Command, pkg string, opts lookupOptions) error {
	ctx := cmd.Context()

	_, client, cc, err := c.newRegistryClient(ctx, registryOptions{noCache: opts.noCache})
	if err != nil {
		return err
	}
	defer cc.Close()

	spinner := newSpinnerWithContext(ctx, "Looking up "+pkg+"...")
	spinner.Start()
	done := startTimer(loggerFromContext(ctx))
	st := registry.Resolve(ctx, client, pkg, opts.refresh)
	spinner.Stop()

	if opts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(st.Result()); err != nil {
			return err
		}
		return st.Err
	}

	switch {
	case st.Status == registry.StatusFailed:
		printError("Lookup failed for %s", pkg)
		return st.Err
	case st.Record == nil:
		printWarning("%s has no registry entry", pkg)
	case st.AuthorName() == "":
		printInfo("%s %s declares no author", st.Record.Name, st.Record.Version)
	default:
		done("resolved author", "pkg", pkg)
		printSuccess("%s", st.AuthorName())
		printKeyValue("Package", st.Record.Name)
		printKeyValue("Version", st.Record.Version)
		if st.Record.License != "" {
			printKeyValue("License", string(st.Record.License))
		}
		if n := len(st.Record.Maintainers); n > 0 {
			printDetail("%d maintainers", n)
		}
	}
	return nil
}
