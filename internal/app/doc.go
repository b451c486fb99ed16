// Package app orchestrates one complaint run.
//
// # Initialization Flow
//
// NewApplication performs, in order:
//
//	1. Resolve paths and create output directories
//	2. Initialize logging (global slog logger unless one is injected)
//	3. Initialize tracing and metrics
//
// # Run Flow
//
// Run is a single linear pass:
//
//	load → diagnostics → normalize → null counts → analyze → charts → CSV export → report
//
// Each stage runs inside a span and records its duration. Load, export and
// report save failures end the run; diagnostics and chart failures are logged.
//
// # Usage
//
//	application, err := app.NewApplication(cfg, app.Options{})
//	if err != nil {
//	    return err
//	}
//	defer application.Stop(ctx)
//	result, err := application.Run(ctx)
package app
