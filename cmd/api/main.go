// shoestock Web服务
//
//	@title						Shoe Inventory API
//	@version					1.0
//	@description				鞋子库存管理：列表、新增、补货、搜索、价值报表
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/xiebiao/shoestock/docs"
	"github.com/xiebiao/shoestock/pkg/metrics"
	"github.com/xiebiao/shoestock/pkg/tracing"
)

func main() {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "shoestock",
		Short:        "Shoe inventory web server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfgFile)
		},
	}
	cmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./config/config.yaml or ./config.yaml)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// serve 启动HTTP服务，收到SIGINT/SIGTERM后优雅退出
func serve(ctx context.Context, cfgFile string) error {
	// 1. 指标注册要在路由使用前完成
	metrics.InitMetrics()

	// 2. 依赖注入（wire_gen.go）
	app, cleanup, err := InitializeApp(cfgFile)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, log := app.Config, app.Log
	log.Info("config loaded",
		zap.Int("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("backend", cfg.Storage.Backend),
		zap.String("database", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr()),
	)

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	// 4. 启动服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      app.Engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// 5. 优雅退出：等待进行中的请求完成
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
