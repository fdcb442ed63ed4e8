package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employeehub/config"
	"employeehub/internal/command"
	"employeehub/internal/log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "employeehub/cmd/docs"
)

var (
	Version  string
	envPath  string
	yamlPath string
	conf     *config.Configuration
	logger   *zap.Logger
)

func init() {
	cobra.OnInitialize(func() {
		if envPath != "" && yamlPath != "" {
			fmt.Println("同時指定 --env 與 --config，將以 --env 優先")
		}
		initConfig()
		initLogger()
	})
}

func registerFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	fs.StringVarP(&yamlPath, "config", "c", "", "YAML config file, e.g. --config config.yaml")
}

// @title        employeehub API
// @version      1.0
// @description  員工資料 CRUD 與部門統計 API
// @host         localhost:8080
// @basePath     /
func main() {
	rootCmd := &cobra.Command{
		Use:   "app",
		Short: "employeehub HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = logger.Sync() }()
			return serve(cmd.Context())
		},
	}
	registerFlags(rootCmd.PersistentFlags())
	command.Register(rootCmd, func() (*command.Command, func(), error) {
		return wireCommand(conf, logger)
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// serve 啟動服務直到收到中斷訊號，收尾最多等 5 秒
func serve(ctx context.Context) error {
	app, cleanup, err := wireApp(conf, logger)
	if err != nil {
		return fmt.Errorf("wire app: %w", err)
	}
	defer cleanup()

	logger.Info("start app ...")
	if err := app.Run(); err != nil {
		return err
	}
	<-ctx.Done()

	logger.Info("shutdown app ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.Stop(shutdownCtx)
}

func initConfig() {
	v, err := newViper(envPath, yamlPath)
	if err != nil {
		panic(err)
	}
	if conf, err = decodeConfig(v); err != nil {
		panic(err)
	}
	if v.ConfigFileUsed() == "" {
		return
	}
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		fmt.Println("config file changed:", in.Name)
		next, err := decodeConfig(v)
		if err != nil {
			fmt.Println("reload config failed:", err)
			return
		}
		*conf = *next
	})
}

func initLogger() {
	var err error
	logger, err = log.NewLogger(conf)
	if err != nil {
		panic(fmt.Errorf("init logger failed: %w", err))
	}
}
