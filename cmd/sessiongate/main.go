package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/config"
	"github.com/amoylab/sessiongate/internal/common/errorx"
	"github.com/amoylab/sessiongate/internal/gate"
	"github.com/amoylab/sessiongate/internal/i18n"
	"github.com/amoylab/sessiongate/internal/server"
	"github.com/amoylab/sessiongate/internal/session"
	"github.com/amoylab/sessiongate/pkg/helper"
	"github.com/amoylab/sessiongate/pkg/logger"
	"github.com/amoylab/sessiongate/pkg/metrics"
	"github.com/amoylab/sessiongate/pkg/trace"
	"github.com/amoylab/sessiongate/pkg/utils"
	"github.com/amoylab/sessiongate/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of " + cnst.CommandName,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", cnst.CommandName, version.Get())
		},
	}

	testCmd = &cobra.Command{
		Use:          "test",
		Short:        "Test the configuration and session store connectivity",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return testConfig(cmd.Context())
		},
	}

	stopCmd = &cobra.Command{
		Use:          "stop",
		Short:        "Stop a running " + cnst.CommandName + " via its PID file",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return stop()
		},
	}

	rootCmd = &cobra.Command{
		Use:   cnst.CommandName,
		Short: "Session authentication gate",
		Long:  `sessiongate checks bearer tokens against the shared session store before requests reach upstream services`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", cnst.SessionGateYaml, "path to configuration file, like /etc/sessiongate/sessiongate.yaml")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(stopCmd)
}

func loadConfig() (*config.GatewayConfig, string, error) {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfgPath, fmt.Errorf("invalid configuration %s: %w", cfgPath, err)
	}
	return cfg, cfgPath, nil
}

func testConfig(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := session.NewStore(zap.NewNop(), &cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("session store is unreachable: %w", err)
	}
	if _, err := buildFilter(cfg, store, zap.NewNop(), nil); err != nil {
		return fmt.Errorf("failed to initialize authentication filter: %w", err)
	}

	fmt.Printf("configuration file %s test is successful\n", cfgPath)
	return nil
}

func stop() error {
	cfg, _, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	pidManager := utils.NewPIDManager(helper.GetPIDPath(cfg.PID))
	if err := pidManager.Signal(syscall.SIGTERM); err != nil {
		return err
	}
	fmt.Printf("sent SIGTERM to process in %s\n", pidManager.GetPIDFile())
	return nil
}

// buildFilter wires the gate against store. Messages from
// auth.translations_dir override the built-in ones.
func buildFilter(cfg *config.GatewayConfig, store session.Store, lg *zap.Logger, m *metrics.Metrics) (*gate.Filter, error) {
	tr, err := i18n.NewDefault()
	if err != nil {
		return nil, err
	}
	if dir := cfg.Auth.TranslationsDir; dir != "" {
		if err := tr.LoadTranslations(dir); err != nil {
			return nil, err
		}
		lg.Info("Loaded custom translations", zap.String("dir", dir))
	}

	opts := []gate.Option{gate.WithTranslator(errorx.NewErrorTranslator(tr, cfg.Auth.Lang))}
	if m != nil {
		opts = append(opts, gate.WithRecorder(m))
	}
	return gate.New(gate.Config{
		Name:      cfg.Auth.FilterName,
		Namespace: cfg.Auth.Namespace,
		LoginType: cfg.Auth.LoginType,
		Lang:      cfg.Auth.Lang,
		StoreType: string(cfg.Session.Type),
	}, store, lg, opts...)
}

func run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	lg, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	lg.Info("Loaded configuration", zap.String("path", cfgPath))
	lg.Info("Starting sessiongate")

	shutdownTracing, err := trace.InitTracing(ctx, &cfg.Tracing, lg)
	if err != nil {
		lg.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		tctx, tcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer tcancel()
		if err := shutdownTracing(tctx); err != nil {
			lg.Error("failed to shutdown tracing", zap.Error(err))
		}
	}()

	store, err := session.NewStore(lg, &cfg.Session)
	if err != nil {
		lg.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer store.Close()

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics)
	}

	filter, err := buildFilter(cfg, store, lg, m)
	if err != nil {
		lg.Fatal("Failed to initialize authentication filter", zap.Error(err))
	}
	lg.Info("Authentication filter initialized",
		zap.String("filter", filter.Name()),
		zap.Strings("required_vars", filter.RequiredVars()),
		zap.String("store", string(cfg.Session.Type)),
		zap.String("namespace", cfg.Auth.Namespace),
	)

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.NewServer(lg, cfg, filter, m)
	if err != nil {
		lg.Fatal("Failed to create server", zap.Error(err))
	}

	pidManager := utils.NewPIDManager(helper.GetPIDPath(cfg.PID))
	if err := pidManager.WritePID(); err != nil {
		lg.Fatal("Failed to write PID file", zap.String("path", pidManager.GetPIDFile()), zap.Error(err))
	}
	defer func() {
		if err := pidManager.RemovePID(); err != nil {
			lg.Warn("Failed to remove PID file", zap.Error(err))
		}
	}()

	srv.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("Received shutdown signal")

	sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Error("failed to shutdown server", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
