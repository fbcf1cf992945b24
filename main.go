package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const usage = "usage: orders-etl s3://bucket/key | orders-etl check <order.json>"

func main() {
	inLambda := os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
	if !inLambda {
		_ = godotenv.Load() // load .env if it exists
	}

	logger, err := NewLogger(os.Getenv("LOG_LEVEL"), inLambda)
	if err != nil {
		logrus.Fatalln(err)
	}

	if !inLambda && len(os.Args) == 3 && os.Args[1] == "check" {
		if err := CheckFile(os.Args[2], os.Stdout); err != nil {
			logger.Fatalln(err)
		}
		return
	}

	config, err := LoadConfigFromEnv()
	if err != nil {
		logger.Fatalln(err)
	}
	h, err := NewHandler(config, logger)
	if err != nil {
		logger.Fatalln(err)
	}

	if inLambda {
		lambda.Start(h.HandleLambdaEvent)
		return
	}
	if len(os.Args) < 2 {
		logger.Fatalln(usage)
	}
	result, err := h.HandleS3URL(context.Background(), os.Args[1])
	if err != nil {
		logger.Fatalln(err)
	}
	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(result); err != nil {
		logger.Fatalln(err)
	}
}
