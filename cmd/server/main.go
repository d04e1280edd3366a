package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	"github.com/algoprep/grader/gradesrvc"
	"github.com/algoprep/grader/http"
	"github.com/algoprep/grader/problemsrvc"
	"github.com/algoprep/grader/sandbox"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.Kitchen,
	})))

	sandboxURL := os.Getenv("SANDBOX_URL")
	if sandboxURL == "" {
		slog.Error("SANDBOX_URL is not set")
		os.Exit(1)
	}
	sandboxClient := sandbox.NewClient(sandboxURL, os.Getenv("SANDBOX_AUTH_TOKEN"))

	problems, err := newProblemServiceFromEnv()
	if err != nil {
		slog.Error("failed to set up problem store", "error", err)
		os.Exit(1)
	}

	var gradeSrvc *gradesrvc.GradeService
	if problems != nil {
		gradeSrvc = gradesrvc.NewGradeService(sandboxClient, problems)
	} else {
		gradeSrvc = gradesrvc.NewGradeService(sandboxClient, nil)
	}

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	httpServer := http.NewHttpServer(gradeSrvc, sandboxClient, origins)

	address := os.Getenv("HTTP_ADDRESS")
	if address == "" {
		address = ":8080"
	}
	slog.Info("starting server", "address", address)
	err = httpServer.Start(address)
	slog.Error("server stopped", "error", err)
}

// newProblemServiceFromEnv wires the DynamoDB-backed problem store; it
// is optional, the service also grades requests with inline test cases.
func newProblemServiceFromEnv() (*problemsrvc.ProblemService, error) {
	tableName := os.Getenv("PROBLEMS_DDB_TABLE")
	if tableName == "" {
		slog.Warn("PROBLEMS_DDB_TABLE is not set, grading only inline test cases")
		return nil, nil
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "eu-central-1"
	}

	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	table := problemsrvc.NewDynamoDbProblemTable(dynamodb.NewFromConfig(cfg), tableName)

	var blobs *problemsrvc.S3BlobStore
	if bucket := os.Getenv("TESTS_S3_BUCKET"); bucket != "" {
		blobs, err = problemsrvc.NewS3BlobStore(region, bucket)
		if err != nil {
			return nil, err
		}
	}

	return problemsrvc.NewProblemService(table, blobs), nil
}
