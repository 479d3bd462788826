package main

import (
	"context"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appshoe "github.com/xiebiao/shoestock/internal/application/shoe"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
	"github.com/xiebiao/shoestock/internal/infrastructure/persistence"
	"github.com/xiebiao/shoestock/internal/interface/cli"
	"github.com/xiebiao/shoestock/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:          "shoestock-cli",
		Short:        "Shoe inventory management from the terminal",
		SilenceUsage: true,
		// 不带子命令时直接进入菜单
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), cfgFile, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config/config.yaml or ./config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "menu",
		Short: "Run the interactive inventory menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd.Context(), cfgFile, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	})

	return root
}

// runMenu 加载配置 → 选择后端 → 运行菜单
// 日志写到stderr（配置为stdout时），避免与菜单输出混在一起
func runMenu(ctx context.Context, cfgFile string, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.LoadInventory(cfgFile)
	if err != nil {
		return err
	}

	logOutput := cfg.Log.Output
	if logOutput == "" || logOutput == "stdout" {
		logOutput = "stderr"
	}
	log, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       logOutput,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	repo, err := persistence.NewShoeRepository(ctx, cfg, persistence.Deps{Fs: afero.NewOsFs(), Log: log})
	if err != nil {
		log.Error("init storage failed", zap.Error(err))
		return err
	}

	session := appshoe.NewSession(repo, log)
	return cli.NewMenu(session, in, out).Run(ctx)
}
