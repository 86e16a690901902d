package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdutil "github.com/conwalk/conwalk/cmd"
	"github.com/conwalk/conwalk/internal/logr"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	interruptOnSignal(ctx, cancel)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.HiRedString("conwalk:"), err.Error())
		os.Exit(1)
	}
}

// interruptOnSignal cancels the run context on the first SIGINT or
// SIGTERM so in-flight browser actions unwind cleanly. A second signal
// falls through to the default handler and kills the process.
func interruptOnSignal(ctx context.Context, cancel context.CancelFunc) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-signals:
			signal.Stop(signals)
			cancel()
		case <-ctx.Done():
			signal.Stop(signals)
		}
	}()
}

func run(ctx context.Context, args []string, out io.Writer) error {
	var loggerCfg logr.Config

	cmd := &cobra.Command{
		Use:           "conwalk",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Define run func in order to enable cobra's default help functionality
		Run: func(cmd *cobra.Command, args []string) {},
	}
	cmd.SetOut(out)

	confDir := cmd.PersistentFlags().String("conf-dir", "conf", "Directory holding the yaml config files")
	logr.LoadConfigFromFlags(cmd.PersistentFlags(), &loggerCfg)

	cmd.SetArgs(args)

	cmd.AddCommand(navCommand())
	cmd.AddCommand(confCommand(confDir))
	cmd.AddCommand(matrixCommand(confDir, &loggerCfg))

	if err := cmdutil.SetFlagsFromEnvVariables(cmd.Flags()); err != nil {
		return err
	}

	return cmd.ExecuteContext(ctx)
}
