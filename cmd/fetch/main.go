package main

import (
	"context"
	"os"
	"strings"

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

	ConfigFile string         `short:"c" long:"config"   env:"CONFIG_FILE" description:"Path to configuration file" default:"config.yaml"`
	Mode       nominatim.Mode `short:"m" long:"mode"     env:"MODE"        description:"Search mode (boundary or position)" default:"boundary"`
	Query      string         `short:"q" long:"query"                      description:"Place to search, positional arguments are used when empty"`
	Output     string         `short:"o" long:"output"                     description:"Output filename (default from config, resultat.json)"`
	Dir        string         `short:"d" long:"dir"      env:"OUTPUT_DIR"  description:"Output directory (default from config)"`
	Format     string         `long:"format"             env:"FORMAT"      description:"Output format (default from config)" choice:"json" choice:"json-indent" choice:"yaml"`
	Stdout     bool           `long:"stdout"                               description:"Write the result to stdout instead of a file"`
	Minio      bool           `long:"minio"                                description:"Upload the result to the configured object storage"`
	Force      bool           `short:"f" long:"force"                      description:"Force overwrite of existing files"`

	Args struct {
		Query []string `positional-arg-name:"QUERY"`
	} `positional-args:"yes"`
}

func main() {
	// .env is optional
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
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.Dir != "" {
		cfg.OutputDir = opts.Dir
	}

	var sink artifact.Sink
	switch {
	case opts.Stdout:
		sink = artifact.WriterSink{W: os.Stdout}
	case opts.Minio:
		sink, err = artifact.NewMinioSink(cfg.MinioConfig())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure object storage")
		}
	default:
		sink = artifact.FileSink{Dir: cfg.OutputDir, Force: opts.Force}
	}

	query := opts.Query
	if query == "" {
		query = strings.Join(opts.Args.Query, " ")
	}

	client := nominatim.NewClient(cfg.Timeout, cfg.UserAgent)
	p := processor.New(cfg, client, sink, processor.WriterNotifier{W: os.Stderr})

	if _, err := p.Run(context.Background(), opts.Mode, processor.Input{
		Query:    query,
		Filename: opts.Output,
	}); err != nil {
		os.Exit(1)
	}
}
