package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"deploy-notifier/internal/config"
	"deploy-notifier/internal/handler"
)

func main() {
	cfg := config.New()
	cfg.PublishSpec = true
	if err := cfg.Load(); err != nil {
		panic(err)
	}

	h, err := handler.New(cfg)
	if err != nil {
		panic(err)
	}
	lambda.Start(h.Handle)
}
