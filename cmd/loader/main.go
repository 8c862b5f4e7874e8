package main

import (
	"context"
	"os"

	"github.com/woozymasta/placefetch/internal/artifact"
	"github.com/woozymasta/placefetch/internal/config"
	"github.com/woozymasta/placefetch/internal/logger"
	"github.com/woozymasta/placefetch/internal/nominatim"
	"github.com/woozymasta/placefetch/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Limit       []string `short:"l" long:"limit"       env:"LIMIT_QUERIES" description:"Limit processing to specific queries"`
	Concurrency int      `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency" default:"4"`
	Dir         string   `short:"d" long:"dir"         env:"OUTPUT_DIR"  description:"Output directory (default from config)"`
	Minio       bool     `long:"minio"                 description:"Upload results to the configured object storage"`
	Force       bool     `short:"f" long:"force"       description:"Force overwrite of existing files"`
}

func main() {
	_ = godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Dir != "" {
		cfg.OutputDir = opts.Dir
	}

	// Filter jobs if limit is set
	jobs := cfg.Jobs
	if len(opts.Limit) > 0 {
		jobs = make([]config.Job, 0)
		seen := make(map[string]bool)

		for _, name := range opts.Limit {
			if seen[name] {
				continue
			}
			seen[name] = true

			found := false
			for _, job := range cfg.Jobs {
				if job.Query == name {
					jobs = append(jobs, job)
					found = true
				}
			}
			if !found {
				log.Error().
					Str("query", name).
					Msg("Query specified in --limit not found in configuration")
			}
		}
	}

	var sink artifact.Sink = artifact.FileSink{Dir: cfg.OutputDir, Force: opts.Force}
	if opts.Minio {
		sink, err = artifact.NewMinioSink(cfg.MinioConfig())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure object storage")
		}
	}

	log.Info().
		Int("jobs_total", len(cfg.Jobs)).
		Int("jobs_queued", len(jobs)).
		Int("concurrency", opts.Concurrency).
		Msg("Starting loader")

	client := nominatim.NewClient(cfg.Timeout, cfg.UserAgent)
	p := processor.New(cfg, client, sink, processor.WriterNotifier{W: os.Stderr})

	if failed := p.RunJobs(context.Background(), jobs, opts.Concurrency); failed > 0 {
		log.Error().Int("failed", failed).Msg("Loader finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Loader finished successfully")
}
