package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kinoworks/prepro/internal/analyze"
	"github.com/kinoworks/prepro/internal/app"
	"github.com/kinoworks/prepro/internal/httpapi"
)

func main() {
	// .env is optional; real environment wins over file values.
	_ = godotenv.Load()

	var (
		addr       string
		configPath string
		uploadDir  string
		outputDir  string
		logFile    string
		verbose    bool
	)
	flag.StringVar(&addr, "addr", envOr("PREPRO_ADDR", ":8080"), "Listen address")
	flag.StringVar(&configPath, "config", os.Getenv("PREPRO_CONFIG"), "Path to YAML config file (optional)")
	flag.StringVar(&uploadDir, "uploads", envOr("PREPRO_UPLOADS", "uploads"), "Directory for uploaded files")
	flag.StringVar(&outputDir, "out", os.Getenv("PREPRO_OUTPUT"), "Output directory for generated sheets")
	flag.StringVar(&logFile, "log.file", os.Getenv("PREPRO_LOG_FILE"), "Rotated log file path (empty logs to stderr only)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if strings.TrimSpace(logFile) != "" {
		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		log.Logger = log.Output(zerolog.MultiLevelWriter(console, rotated))
	} else {
		log.Logger = log.Output(console)
	}
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}

	cfg := app.Config{
		OutputDir:   outputDir,
		LLMBaseURL:  os.Getenv("LLM_BASE_URL"),
		LLMModel:    os.Getenv("LLM_MODEL"),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),
		HistoryPath: os.Getenv("PREPRO_HISTORY"),
		Verbose:     verbose,
	}
	var kw *analyze.Keywords
	if strings.TrimSpace(configPath) != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("loading config file failed")
		}
		app.ApplyFileConfig(&cfg, fc)
		kw = fc.Keywords
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}

	ctx := context.Background()
	proc, err := app.New(ctx, cfg, kw)
	if err != nil {
		log.Fatal().Err(err).Msg("init processor failed")
	}
	defer proc.Close()

	server := &httpapi.Server{
		Proc:      proc,
		UploadDir: uploadDir,
		OutputDir: cfg.OutputDir,
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
