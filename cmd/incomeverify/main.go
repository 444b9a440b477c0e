// Command incomeverify runs the 1099Pass HTTP server: report generation,
// governed fetch through a share token, and revocation. The server exposes
// no route that issues share tokens.
//
// Grounded on dafibh-fortuna-backend's cmd/api/main.go composition root:
// load config, build a zerolog logger, construct each infrastructure
// client once, wire them into the HTTP layer, and run.
package main

import (
	"context"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"incomeverify/config"
	"incomeverify/objectstore"
	"incomeverify/report"
	"incomeverify/server"
	"incomeverify/sharetoken"
	"incomeverify/sharetoken/sharestore/postgres"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if level, parseErr := zerolog.ParseLevel(cfg.LogLevel); parseErr == nil {
		logger = logger.Level(level)
	}

	ctx := context.Background()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load AWS configuration")
	}
	s3Client := s3.NewFromConfig(awsCfg)
	objectStore := objectstore.NewS3ReportStore(s3Client, cfg.S3Bucket)

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	tokenStore := postgres.New(pool)
	if err := tokenStore.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure share_tokens schema")
	}
	tokenManager := sharetoken.NewManager(tokenStore, nil)

	renderer := report.MinimalPdfRenderer{}

	srv := server.New(tokenManager, objectStore, renderer, logger, cfg.ShareTokenRateRPS)

	logger.Info().Str("port", cfg.Port).Msg("starting 1099Pass server")
	if err := srv.Echo.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
