package cli

import (
	"context"
	"fmt"
	"net"

	"notebook/internal/config"
	"notebook/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type app struct {
	v          *viper.Viper
	configFile string
	cfg        config.Config
	logger     *zap.Logger

	// onListen is called with the bound address once serve is accepting.
	onListen func(net.Addr)
}

func newApp() *app {
	return &app{v: viper.New(), logger: zap.NewNop()}
}

// Execute runs the notebook command line and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	root := NewRootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "notebook",
		Short: "Serve notes as server-rendered HTML",
		Long: `notebook renders notes from a memory, SQLite, markdown directory or
GraphQL store. /note/{id} shows one note, or a placeholder when the store
has no note with that id.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", "", "config file (yaml, toml or json)")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("store", "", "note store driver: memory, sqlite, dir or graphql")
	_ = a.v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("store.driver", flags.Lookup("store"))

	root.AddCommand(
		newServeCommand(a),
		newImportCommand(a),
		newShowCommand(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}
