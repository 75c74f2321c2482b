package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"

	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/detect"
	"github.com/hrsync/backend/hackerrank"
	hrsynchttp "github.com/hrsync/backend/http"
	"github.com/hrsync/backend/ledger"
	"github.com/hrsync/backend/snapshot"
	"github.com/hrsync/backend/syncsrvc"
)

const defaultHackerrankURL = "https://www.hackerrank.com"

func main() {
	// .env is optional in production, required-ish in dev
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	confPath := os.Getenv("HRSYNC_CONFIG_PATH")
	if confPath == "" {
		confPath = "hrsync-config.toml"
	}
	confStore := conf.NewStore(confPath)

	historyRepo, snapshots := buildAwsBackends()
	history := ledger.New(historyRepo, slog.Default())

	syncSrvc := syncsrvc.New(confStore, history, snapshots, nil, slog.Default())

	hrBaseURL := os.Getenv("HACKERRANK_BASE_URL")
	if hrBaseURL == "" {
		hrBaseURL = defaultHackerrankURL
	}
	hrClient := hackerrank.NewClient(hrBaseURL)

	timings := detect.DefaultTimings()
	notifier := detect.NewPushNotifier(timings.Coalesce)
	machine := detect.NewMachine(hrClient, syncSrvc, notifier, timings, slog.Default())

	var jwtKey []byte
	if key := os.Getenv("JWT_KEY"); key != "" {
		jwtKey = []byte(key)
	} else {
		slog.Warn("JWT_KEY is not set, config endpoints run unauthenticated")
	}

	httpServer := hrsynchttp.NewHttpServer(
		machine, notifier, syncSrvc, confStore, history, hrClient, nil, jwtKey)

	address := os.Getenv("HRSYNC_ADDRESS")
	if address == "" {
		address = ":8080"
	}

	server := &http.Server{Addr: address, Handler: httpServer.Handler()}
	go func() {
		log.Printf("Starting server on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server stopped with error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// buildAwsBackends wires the DynamoDB history table and the S3
// snapshot mirror when their env vars are set. Without them the
// service falls back to in-memory history and no mirror.
func buildAwsBackends() (ledger.Repo, syncsrvc.Snapshotter) {
	tableName := os.Getenv("DDB_HISTORY_TABLE_NAME")
	bucket := os.Getenv("SNAPSHOT_S3_BUCKET")
	if tableName == "" && bucket == "" {
		slog.Info("no AWS backends configured, history is in-memory")
		return ledger.NewInMemRepo(), nil
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(regionOrDefault()))
	if err != nil {
		log.Fatalf("unable to load SDK config: %v", err)
	}

	var repo ledger.Repo = ledger.NewInMemRepo()
	if tableName != "" {
		repo = ledger.NewDynamoDbHistoryTable(dynamodb.NewFromConfig(cfg), tableName)
	}

	var snapshots syncsrvc.Snapshotter
	if bucket != "" {
		snapshots = snapshot.NewS3Snapshots(s3.NewFromConfig(cfg), bucket)
	}
	return repo, snapshots
}

func regionOrDefault() string {
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	return "eu-central-1"
}
