package cmd

import (
	"fmt"

	inputadapter "github.com/bnema/dx/internal/adapters/input"
	"github.com/bnema/dx/internal/adapters/terminal"
	"github.com/bnema/dx/internal/application"
	"github.com/bnema/dx/internal/domain"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	code      string
	file      string
	importMap string
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dx",
		Short: "dx: pipe data into JavaScript and explore it interactively",
		Long: "dx reads piped standard input, decodes it as JSON, TOML, YAML or text, and exposes it to JavaScript as input. " +
			"Without -c or -f it starts an interactive buffer-based REPL with module imports and execution history.",
		Example: `  curl -s https://api.github.com/repos/golang/go | dx -c 'input.stargazers_count'
  dx module add zod npm:zod@3
  cat data.yaml | dx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.importMap, "import-map", "", "JSON import map (deno.json or import_map.json) used to resolve bare specifiers")
	rootCmd.Flags().StringVarP(&opts.code, "code", "c", "", "evaluate code and exit")
	rootCmd.Flags().StringVarP(&opts.file, "file", "f", "", "evaluate a script file and exit")
	rootCmd.MarkFlagsMutuallyExclusive("code", "file")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runRoot(cmd, app, opts)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newModuleCmd(app, opts),
	)

	return rootCmd
}

func runRoot(cmd *cobra.Command, app *app, opts *rootOptions) error {
	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	sess, err := app.newSession(cmd, opts.importMap, input)
	if err != nil {
		return err
	}

	runner := application.NewScriptRunner(application.ScriptOptions{
		Presenter: sess.presenter,
		Evaluator: sess.engine,
		Importer:  sess.importer,
		Namespace: sess.namespace,
	})

	switch {
	case cmd.Flags().Changed("code"):
		return runner.RunCode(cmd.Context(), opts.code)
	case cmd.Flags().Changed("file"):
		return runner.RunFile(cmd.Context(), opts.file)
	default:
		return runRepl(cmd, app, sess)
	}
}

// readInput decodes stdin unless it is a terminal.
func readInput(cmd *cobra.Command) (any, error) {
	stdin := cmd.InOrStdin()
	if terminal.IsTerminal(stdin) {
		return domain.NoInput, nil
	}

	value, _, err := inputadapter.Read(stdin)
	if err != nil {
		return nil, fmt.Errorf("read piped input: %w", err)
	}

	return value, nil
}
