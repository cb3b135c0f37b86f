package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/helixml/splist/application/service"
	"github.com/helixml/splist/domain/access"
	"github.com/helixml/splist/domain/page"
	"github.com/helixml/splist/domain/subpage"
	"github.com/helixml/splist/internal/log"
	"github.com/spf13/cobra"
)

func renderCmd() *cobra.Command {
	var (
		envFile  string
		current  string
		rawOpts  []string
		user     string
		groups   []string
		wikitext bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the subpage list of a page",
		Long: `Render the subpage list of a page to standard output.

Options are given as key=value pairs, the same keys a page would use:

  splist render --page "Help:Guide" --opt showpath=notparent --opt sort=desc`,
		Example: `  splist render --page Guide
  splist render --page Guide --opt liststyle=bar --opt showparent=yes
  splist render --page Guide --opt parent=Help:FAQ --user Alice --groups staff
  splist render --page Guide --wikitext`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseOptionArgs(rawOpts)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			logger := log.NewWithWriter(cmd.ErrOrStderr(), cfg.LogFormat(), cfg.LogLevel())

			client, err := openClient(cfg, logger)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			title, err := client.Namespaces().Parse(current)
			if err != nil {
				return fmt.Errorf("page: %w", err)
			}
			reader := access.NewUser(user, groups...)

			if wikitext {
				return writeWikitext(cmd, client.Subpages, title, reader, opts)
			}

			out, err := client.Subpages.Render(cmd.Context(), service.NewRenderRequest(title, reader, opts))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out.HTML())
			return err
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&current, "page", "", "Page whose subpages are listed")
	cmd.Flags().StringArrayVar(&rawOpts, "opt", nil, "Listing option as key=value (repeatable)")
	cmd.Flags().StringVar(&user, "user", "", "User the listing is rendered for (default: anonymous)")
	cmd.Flags().StringSliceVar(&groups, "groups", nil, "Groups of --user")
	cmd.Flags().BoolVar(&wikitext, "wikitext", false, "Print the generated wikitext instead of HTML")
	_ = cmd.MarkFlagRequired("page")

	return cmd
}

func writeWikitext(cmd *cobra.Command, subpages *service.Subpages, current page.Title, user access.User, args map[string]string) error {
	opts, diags := subpage.ParseOptions(args)
	for _, d := range diags {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning:", d.Error())
	}

	listing, err := subpages.Query(cmd.Context(), current, user, opts)
	if err != nil {
		return err
	}
	return printLines(cmd.OutOrStdout(), strings.TrimPrefix(subpage.NewFormatter(opts).Format(listing), "\n"))
}

func printLines(w io.Writer, text string) error {
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

// parseOptionArgs turns repeated key=value flags into listing arguments.
// Later values for the same key win.
func parseOptionArgs(raw []string) (map[string]string, error) {
	args := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if !ok || key == "" {
			return nil, fmt.Errorf("option %q: expected key=value", kv)
		}
		args[key] = value
	}
	return args, nil
}
