package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/five82/contractdesk/internal/app"
	"github.com/five82/contractdesk/internal/contracts"
	"github.com/five82/contractdesk/internal/logging"
	"github.com/five82/contractdesk/internal/state"
)

// rootFlags are shared by every command.
type rootFlags struct {
	configPath string
	prefsPath  string
	apiURL     string
	envFile    string
	verbose    bool
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		APIURL:     f.apiURL,
		EnvFile:    f.envFile,
		Verbose:    f.verbose,
	}
}

// withEnv runs fn with a fully initialised environment.
func (f *rootFlags) withEnv(fn func(env *app.Env) error) error {
	env, err := app.Setup(f.options())
	if err != nil {
		return err
	}
	defer env.Close()
	return fn(env)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "contractdesk",
		Short:         "Browse and edit contracts from the terminal",
		Long:          "contractdesk lists, filters, views, creates and edits contracts stored behind the /api/v1/contracts/ endpoint.\nRun without a subcommand to open the interactive interface.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), flags.options())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/contractdesk/config.toml)")
	pf.StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/contractdesk/prefs.toml)")
	pf.StringVar(&flags.apiURL, "api", "", "contracts endpoint, overrides config and environment")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file seeded into the environment when present")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(
		newListCmd(flags),
		newShowCmd(flags),
		newCreateCmd(flags),
		newUpdateCmd(flags),
		newLogsCmd(flags),
	)
	return cmd
}

func newListCmd(flags *rootFlags) *cobra.Command {
	var (
		criteria state.Criteria
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts, optionally filtered by date and planned amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := criteria.Validate(); err != nil {
				return err
			}
			return flags.withEnv(func(env *app.Env) error {
				list, err := env.Client.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list contracts: %w", err)
				}
				list = state.Apply(list, criteria)

				out := cmd.OutOrStdout()
				if asJSON {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(list)
				}
				return writeTable(out, list, env.Formatter, env.Config.CompletionKeyword)
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&criteria.DateFrom, "date-from", "", "earliest contract date, YYYY-MM-DD")
	f.StringVar(&criteria.DateTo, "date-to", "", "latest contract date, YYYY-MM-DD")
	f.StringVar(&criteria.AmountFrom, "amount-from", "", "minimum planned amount")
	f.StringVar(&criteria.AmountTo, "amount-to", "", "maximum planned amount")
	f.BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func writeTable(out io.Writer, list []contracts.Contract, format contracts.Formatter, keyword string) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(out, "No contracts found.")
		return err
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tNAME\tDATE\tPLANNED\tSTATUS")
	for _, c := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			orDash(c.Number),
			c.Title(),
			format.Date(c.ContractDate),
			format.Amount(c.PlannedAmount),
			contracts.StatusOf(c, keyword).Label(),
		)
	}
	return w.Flush()
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one contract with its analysis and version history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return flags.withEnv(func(env *app.Env) error {
				c, err := env.Client.Get(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("get contract %d: %w", id, err)
				}
				md := contracts.Markdown(*c, env.Formatter, env.Config.CompletionKeyword)
				out := cmd.OutOrStdout()
				if raw {
					_, err := io.WriteString(out, md)
					return err
				}
				return renderMarkdown(out, md)
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without rendering")
	return cmd
}

// renderMarkdown styles md for a terminal, or plainly when out is not one.
func renderMarkdown(out io.Writer, md string) error {
	style := "notty"
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(100))
	if err != nil {
		return fmt.Errorf("init renderer: %w", err)
	}
	rendered, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = io.WriteString(out, rendered)
	return err
}

// draftFlags binds the editable contract fields to command flags.
func draftFlags(cmd *cobra.Command, d *contracts.Draft) {
	f := cmd.Flags()
	f.StringVar(&d.Number, "number", "", "contract number")
	f.StringVar(&d.Name, "name", "", "contract name")
	f.StringVar(&d.ContractDate, "date", "", "contract date, YYYY-MM-DD")
	f.StringVar(&d.Parties, "parties", "", "parties to the contract")
	f.StringVar(&d.ExecutionDeadline, "deadline", "", "execution deadline, YYYY-MM-DD")
	f.StringVar(&d.PlannedAmount, "planned", "", "planned amount")
	f.StringVar(&d.ActualAmount, "actual", "", "actual amount")
	f.StringVar(&d.ReadinessDescription, "readiness", "", "readiness description")
}

func newCreateCmd(flags *rootFlags) *cobra.Command {
	var d contracts.Draft
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := d.Payload()
			if err != nil {
				return err
			}
			return flags.withEnv(func(env *app.Env) error {
				saved, err := env.Client.Create(cmd.Context(), payload)
				if err != nil {
					return fmt.Errorf("create contract: %s", contracts.Message(err, err.Error()))
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created contract %d (%s)\n", saved.ID, saved.Title())
				return err
			})
		},
	}
	draftFlags(cmd, &d)
	return cmd
}

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	var d contracts.Draft
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change selected fields of a contract",
		Long:  "update sends only the flags that were given; other fields keep their stored values.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			payload, err := d.Sparse()
			if err != nil {
				return err
			}
			return flags.withEnv(func(env *app.Env) error {
				saved, err := env.Client.Update(cmd.Context(), id, payload)
				if err != nil {
					return fmt.Errorf("update contract %d: %s", id, contracts.Message(err, err.Error()))
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Updated contract %d (%s)\n", saved.ID, saved.Title())
				return err
			})
		},
	}
	draftFlags(cmd, &d)
	return cmd
}

func newLogsCmd(flags *rootFlags) *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the newest entries of the contractdesk log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			minLevel, err := zapcore.ParseLevel(level)
			if err != nil {
				return fmt.Errorf("invalid level %q", level)
			}
			return flags.withEnv(func(env *app.Env) error {
				entries, err := logging.Tail(env.Config.LogFile, lines, minLevel)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					_, err := fmt.Fprintf(out, "No log entries in %s\n", env.Config.LogFile)
					return err
				}
				for _, e := range entries {
					if _, err := fmt.Fprintln(out, e.String()); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of entries, 0 for all")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level to show")
	return cmd
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid contract id %q", arg)
	}
	return id, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
