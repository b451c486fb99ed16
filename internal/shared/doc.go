// Package shared holds helpers used across packages.
//
// testutil provides a capturing slog handler and complaint fixtures for
// tests.
package shared
