package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"complaintcli/internal/app"
	"complaintcli/internal/config"
	"complaintcli/internal/errors"
	"complaintcli/pkg/contracts"
)

// flags holds command line overrides of the loaded configuration
type flags struct {
	in        string
	reportOut string
	chartsOut string
	top       int
	version   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		slog.Error("Complaint report failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.in, "in", "", "input complaint file (.csv, .tsv, .txt or .xlsx); defaults to input.path from config")
	fs.StringVar(&f.reportOut, "report-out", "", "save the text report to this file")
	fs.StringVar(&f.chartsOut, "charts-out", "", "write the chart workbook to this file")
	fs.IntVar(&f.top, "top", 0, "number of products and companies listed in the report")
	fs.BoolVar(&f.version, "version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply overlays the flags that were set onto cfg and revalidates it
func (f *flags) apply(cfg *config.Config) error {
	if f.in != "" {
		cfg.Input.Path = f.in
	}
	if f.reportOut != "" {
		cfg.Report.OutputFile = f.reportOut
	}
	if f.chartsOut != "" {
		cfg.Charts.Enabled = true
		cfg.Charts.OutputFile = f.chartsOut
	}
	if f.top != 0 {
		cfg.Report.TopN = f.top
	}
	return cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if f.version {
		_, err := fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.NewConfigError("failed to load configuration", err)
	}
	if err := f.apply(cfg); err != nil {
		return errors.NewConfigError("invalid command line", err)
	}

	application, err := app.NewApplication(cfg, app.Options{Stdout: stdout, Stderr: stderr})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Stop(shutdownCtx); err != nil {
			application.Logger.Error("Shutdown failed", slog.String("error", err.Error()))
		}
	}()

	_, err = application.Run(ctx)
	return err
}
