//go:build ignore

// build.go - Complaint Report build script
// Usage: go run build.go [-target=TARGET] [-v]
// Targets: build, test, clean, release

package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	module  = "complaintcli"
	binary  = "complaint-report"
	cmdPath = "./cmd/complaint-report"
)

var (
	distDir = "dist"

	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

func main() {
	target := flag.String("target", "build", "Build target")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	printHeader()
	startTime := time.Now()

	switch *target {
	case "build":
		buildBinary(*verbose, false)
	case "test":
		runTests(*verbose)
	case "clean":
		clean()
	case "release":
		runTests(*verbose)
		buildBinary(*verbose, true)
	default:
		showHelp()
		os.Exit(1)
	}

	printSuccess(fmt.Sprintf("Build completed in %s", time.Since(startTime).Round(time.Millisecond)))
}

func printHeader() {
	fmt.Println(colorCyan + "    Complaint Report - Build System    " + colorReset)
}

func printInfo(msg string) {
	fmt.Println(colorCyan + "[INFO] " + colorReset + msg)
}

func printSuccess(msg string) {
	fmt.Println(colorGreen + "[OK] " + colorReset + msg)
}

func printError(msg string) {
	fmt.Println(colorRed + "[ERROR] " + colorReset + msg)
}

func printWarning(msg string) {
	fmt.Println(colorYellow + "[WARN] " + colorReset + msg)
}

// gitCommit returns the short commit hash, or "unknown" outside a checkout
func gitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		printWarning("git commit unavailable, stamping 'unknown'")
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func buildBinary(verbose, release bool) {
	printInfo(fmt.Sprintf("Building %s...", binary))

	name := binary
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	outputPath := filepath.Join(distDir, name)

	ldflags := fmt.Sprintf("-X %s/pkg/contracts.BuildTime=%s -X %s/pkg/contracts.GitCommit=%s",
		module, time.Now().UTC().Format(time.RFC3339), module, gitCommit())
	if release {
		ldflags = "-s -w " + ldflags
	}

	args := []string{"build", "-ldflags", ldflags, "-o", outputPath}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, cmdPath)

	cmd := exec.Command("go", args...)
	cmd.Stderr = os.Stderr
	if verbose {
		fmt.Printf("Running: go %s\n", strings.Join(args, " "))
		cmd.Stdout = os.Stdout
	}

	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Failed to build %s: %v", binary, err))
		os.Exit(1)
	}

	if info, err := os.Stat(outputPath); err == nil {
		printSuccess(fmt.Sprintf("Built %s (%.1f MB)", outputPath, float64(info.Size())/1024/1024))
	}
}

func runTests(verbose bool) {
	printInfo("Running Go tests...")

	args := []string{"test", "-race"}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, "./...")

	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		printError(fmt.Sprintf("Go tests failed: %v", err))
		os.Exit(1)
	}
	printSuccess("All tests passed")
}

// clean removes build output and generated run artifacts
func clean() {
	printInfo("Cleaning build artifacts...")

	for _, dir := range []string{distDir, "reports", "exports", "logs"} {
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			printError(fmt.Sprintf("Failed to clean %s: %v", dir, err))
		}
	}
	printSuccess("Build artifacts cleaned")
}

func showHelp() {
	fmt.Println("Usage: go run build.go -target=TARGET [-v]")
	fmt.Println("Targets:")
	fmt.Println("  build     Build the complaint-report binary into dist/")
	fmt.Println("  test      Run all Go tests with the race detector")
	fmt.Println("  clean     Remove dist/ and generated reports, exports and logs")
	fmt.Println("  release   Run tests, then build a stripped binary")
}
