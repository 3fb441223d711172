package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/heyeunseok/scripture-kiosk/internal/config"
	"github.com/heyeunseok/scripture-kiosk/internal/interaction"
	"github.com/heyeunseok/scripture-kiosk/internal/kiosk"
	"github.com/heyeunseok/scripture-kiosk/internal/kioskinfo"
	"github.com/heyeunseok/scripture-kiosk/internal/scripture"
	"github.com/heyeunseok/scripture-kiosk/internal/server"
	"github.com/heyeunseok/scripture-kiosk/internal/telemetry"
	"github.com/heyeunseok/scripture-kiosk/internal/voice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Loader{}.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	logger.Info("starting kiosk",
		"version", kioskinfo.Info.Version,
		"listen_addr", cfg.ListenAddr,
		"bible_path", cfg.BiblePath,
		"language", cfg.Language,
		"stub_synthesizer", cfg.StubSynthesizer,
		"mask_book_names", cfg.MaskBookNames,
	)

	store, err := scripture.Load(cfg.BiblePath, logger)
	if err != nil {
		logger.Warn("scripture corpus unavailable, passage requests will report missing data", "error", err)
	}

	recorder := telemetry.NewRecorder(logger)
	synth := voice.New(cfg.StubSynthesizer, logger)
	defer func() {
		if err := synth.Close(); err != nil {
			logger.Warn("failed to close synthesizer", "error", err)
		}
	}()

	svc := kiosk.New(kiosk.Options{
		Parser:      scripture.NewParser(logger, scripture.MaskBookNames(cfg.MaskBookNames)),
		Store:       store,
		Machine:     interaction.NewMachine(logger),
		Wake:        interaction.NewWakeDetector(cfg.WakeWords),
		Synthesizer: synth,
		Recorder:    recorder,
		Language:    cfg.Language,
		Logger:      logger,
	})

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Error("failed to bind listener", "error", err)
		os.Exit(1)
	}
	defer lis.Close()

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthgrpc.RegisterHealthServer(grpcServer, healthServer)

	serviceName := server.KioskServiceDesc.ServiceName
	healthServer.SetServingStatus("", healthgrpc.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(serviceName, healthgrpc.HealthCheckResponse_NOT_SERVING)

	server.RegisterKioskServer(grpcServer, server.New(svc, logger))

	healthServer.SetServingStatus("", healthgrpc.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(serviceName, healthgrpc.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		logger.Info("shutdown requested, stopping gRPC server")
		healthServer.SetServingStatus(serviceName, healthgrpc.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus("", healthgrpc.HealthCheckResponse_NOT_SERVING)

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			logger.Warn("graceful stop timed out, forcing stop")
			grpcServer.Stop()
		}
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		logger.Error("gRPC server terminated with error", "error", err)
		os.Exit(1)
	}

	if snapshot := recorder.Snapshot(); snapshot.TotalRequests > 0 {
		logger.Info("telemetry totals",
			"total_requests", snapshot.TotalRequests,
			"failed_requests", snapshot.FailedRequests,
			"wake_detected", snapshot.WakeDetected,
			"greetings", snapshot.Greetings,
			"strikes", snapshot.Strikes,
			"strike_resets", snapshot.StrikeResets,
			"manual_resets", snapshot.ManualResets,
			"bible_requests", snapshot.BibleRequests,
			"passages_read", snapshot.PassagesRead,
			"parse_failures", snapshot.ParseFailures,
			"lookup_failures", snapshot.LookupFailures,
			"synthesis_errors", snapshot.SynthesisErrors,
		)
	}

	logger.Info("kiosk stopped")
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(value string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
