// Command enumlabelgen registers the display labels of annotated enums.
//
// Typical use is a go:generate directive in the package declaring the enums:
//
//	//go:generate go run github.com/pablor21/enumlabel/cmd/enumlabelgen
//
// Ordinary enums need a @label("...") on every constant; types marked @flags
// are rendered from their bit values.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pablor21/enumlabel/config"
	"github.com/pablor21/enumlabel/generator"
	"github.com/pablor21/enumlabel/logger"
)

var errStale = errors.New("generated files are out of date")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "enumlabelgen:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("enumlabelgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  = fs.String("config", "", "path to an enumlabel.yml config file")
		output      = fs.String("output", "", "name of the generated file (default from config)")
		delimiter   = fs.String("delimiter", "", "flags delimiter used by EnumLabel (default from config)")
		logLevel    = fs.String("log-level", "", "debug, info, warn, error or none")
		verbose     = fs.Bool("v", false, "verbose output, same as -log-level=debug")
		check       = fs.Bool("check", false, "report out of date files instead of writing them")
		showVersion = fs.Bool("version", false, "print the version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: enumlabelgen [flags] [packages]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion {
		fmt.Fprintln(stdout, "enumlabelgen", getVersion())
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if fs.NArg() > 0 {
		cfg.Packages = fs.Args()
		cfg.ConfigDir = ""
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *delimiter != "" {
		cfg.FlagsDelimiter = *delimiter
	}
	if *logLevel != "" {
		cfg.LogLevel = logger.ParseLevel(*logLevel)
	}
	if *verbose {
		cfg.LogLevel = logger.LogLevelDebug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := generator.ProcessWithContext(&generator.ProcessContext{
		Config: cfg,
		Logger: logger.New(stderr, cfg.LogLevel),
		Check:  *check,
	})
	if err != nil {
		return err
	}

	if *check && len(res.Stale) > 0 {
		return fmt.Errorf("%w: %s", errStale, strings.Join(res.Stale, ", "))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	// an enumlabel.yml next to the package is picked up automatically
	for _, name := range []string{"enumlabel.yml", "enumlabel.yaml"} {
		if _, err := os.Stat(name); err == nil {
			return config.LoadConfigFile(name)
		}
	}
	return config.NewDefaultConfig(), nil
}
