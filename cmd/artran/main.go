// Command artran translates article records.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ZaguanLabs/artran"
)

func main() {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	return newApp(stdin, stdout, stderr).execute(args)
}

// providerFactory builds the upstream provider and a function releasing it.
type providerFactory func(ctx context.Context, cfg config) (artran.TextProvider, func() error, error)

// app carries the I/O and configuration shared by all commands.
type app struct {
	v           *viper.Viper
	cfgFile     string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	newProvider providerFactory
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:           newViper(),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		newProvider: newBaseProvider,
	}
}

func (a *app) execute(args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	return root.Execute()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   artran.Name,
		Short: artran.Description,
		Long: `artran translates the text fields of article records (title, text,
description and keywords) through a shared, bounded translation cache.

Examples:
  artran translate --to en articles.json
  cat articles.jsonl | artran translate --to pt --jsonl --stats
  artran worker`,
		Version:       artran.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return readConfigFile(a.v, a.cfgFile, a.stderr)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.artran.yaml)")
	flags.String("provider", "google", "Translation provider: google, openai or ollama")
	flags.Int("capacity", artran.DefaultCapacity, "Maximum number of cached translations")
	flags.Int("concurrency", 4, "Fields translated at once per record")
	flags.String("redis-url", "", "Shared Redis translation store (optional)")

	bindFlag(a.v, "provider", flags.Lookup("provider"))
	bindFlag(a.v, "cache.capacity", flags.Lookup("capacity"))
	bindFlag(a.v, "concurrency", flags.Lookup("concurrency"))
	bindFlag(a.v, "cache.redis_url", flags.Lookup("redis-url"))

	root.AddCommand(a.translateCommand(), a.workerCommand(), a.versionCommand())
	return root
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "%s %s\n", artran.Name, artran.Version)
			if commit := artran.Commit(); commit != "" {
				fmt.Fprintf(a.stdout, "  commit:  %s\n", commit)
			}
			if artran.BuildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", artran.BuildDate)
			}
			return nil
		},
	}
}

// translator assembles the provider chain, cache and record translator for cfg.
func (a *app) translator(ctx context.Context, cfg config) (*artran.RecordTranslator, func() error, error) {
	logger := log.New(a.stderr, "", log.LstdFlags)

	base, closeBase, err := a.newProvider(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	p, closeChain, err := wrapProvider(ctx, base, cfg, logger)
	if err != nil {
		closeBase()
		return nil, nil, err
	}

	c := artran.NewTranslationCache(p, artran.WithCapacity(cfg.CacheCapacity))
	t := artran.NewRecordTranslator(c,
		artran.WithLogger(logger),
		artran.WithConcurrency(cfg.Concurrency),
		artran.WithRecordConcurrency(cfg.Concurrency),
	)

	closeAll := func() error {
		err := closeChain()
		if cerr := closeBase(); err == nil {
			err = cerr
		}
		return err
	}
	return t, closeAll, nil
}
