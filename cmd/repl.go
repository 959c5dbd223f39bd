package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/dx/internal/adapters/terminal"
	"github.com/bnema/dx/internal/application"
	"github.com/bnema/dx/internal/ports"
	"github.com/bnema/dx/internal/version"
	"github.com/spf13/cobra"
)

func runRepl(cmd *cobra.Command, app *app, sess *session) error {
	reader, err := openLineReader(cmd.InOrStdin(), cmd.OutOrStdout(), terminal.Options{
		HistoryPath: app.config.HistoryPath,
	})
	if err != nil {
		return err
	}
	defer reader.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, shutdownSignals(reader)...)
	defer signal.Stop(signals)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-signals:
			_ = reader.Close()
			os.Exit(signalExitCode(sig))
		case <-done:
		}
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "dx %s. Type .help for commands, .exit to leave.\n", version.Version)

	repl := application.NewRepl(application.ReplOptions{
		Reader:    reader,
		Presenter: sess.presenter,
		Evaluator: sess.engine,
		Importer:  sess.importer,
		Modules:   sess.modules,
		Namespace: sess.namespace,
	})

	return repl.Run(cmd.Context())
}

// shutdownSignals lists the signals that end the session. liner reads Ctrl-C
// as a key at the prompt, so a SIGINT only arrives while code is running and
// is treated as a shutdown. The tty stream reader consumes SIGINT itself.
func shutdownSignals(reader ports.LineReader) []os.Signal {
	signals := []os.Signal{syscall.SIGTERM, syscall.SIGHUP}
	if _, ok := reader.(*terminal.LinerReader); ok {
		signals = append(signals, os.Interrupt)
	}

	return signals
}

func signalExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok {
		return 128 + int(s)
	}

	return 1
}
