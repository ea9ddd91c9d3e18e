package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/hiresense/internal/db"
	"github.com/jonathan/hiresense/internal/worker"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var workerConcurrency int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis jobs from RabbitMQ",
	Long: `Consume analysis jobs from the analysis_requests queue, download uploaded resumes from
S3-compatible storage, save results to the database and publish status updates on the
analysis_updates exchange. Requires AMQP_URL.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().IntVarP(&workerConcurrency, "concurrency", "c", 2, "Number of queue consumers")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.AMQPURL == "" {
		return fmt.Errorf("AMQP_URL is required (set the environment variable or amqp_url in the config file)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	producer, cleanup, err := buildProducer(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer cleanup()

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer func() { _ = conn.Close() }()

	publisher, err := worker.NewAMQPPublisher(conn)
	if err != nil {
		return err
	}

	var opts []worker.Option
	if cfg.S3Bucket != "" {
		objects, err := worker.NewS3Store(ctx, worker.S3Config{
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return err
		}
		opts = append(opts, worker.WithObjectStore(objects))
	}
	if cfg.DatabaseURL != "" {
		store, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()
		opts = append(opts, worker.WithStore(store))
	}

	return worker.New(producer, publisher, opts...).Run(ctx, cfg.AMQPURL, workerConcurrency)
}
