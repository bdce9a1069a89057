// Command bspcrc computes and verifies the checksums of Source engine map files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/icza/bsp"
)

const version = "1.0.0"

var cfg struct {
	verbose    bool
	bufferSize int
	checksum   struct {
		files       []string
		format      string
		concurrency int
	}
	verify struct {
		file   string
		expect string
	}
	inspect struct {
		file string
	}
}

var (
	consoleOutput = os.Stderr
	logger        = log.NewLogfmtLogger(consoleOutput)
)

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Computes the checksum the Source engine uses to verify map (BSP) files.").UsageWriter(os.Stdout)
	app.Version(version)
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Short('v').Default("false").BoolVar(&cfg.verbose)
	app.Flag("buffer-size", "Size of the read buffer in bytes.").Default(fmt.Sprint(bsp.DefaultBufferSize)).IntVar(&cfg.bufferSize)

	checksumCmd := app.Command("checksum", "Print the checksum of map files.").Default()
	checksumCmd.Arg("file", "BSP file path").Required().ExistingFilesVar(&cfg.checksum.files)
	checksumCmd.Flag("format", "Output format of the checksums: hex, dec or signed.").Default(formatHex).EnumVar(&cfg.checksum.format, formatHex, formatDec, formatSigned)
	checksumCmd.Flag("concurrency", "Number of files checksummed at the same time.").Default("4").IntVar(&cfg.checksum.concurrency)

	verifyCmd := app.Command("verify", "Verify the checksum of a map file.")
	verifyCmd.Arg("file", "BSP file path").Required().ExistingFileVar(&cfg.verify.file)
	verifyCmd.Flag("expect", "Expected checksum: hex with 0x prefix, or unsigned or signed decimal.").Short('e').Required().StringVar(&cfg.verify.expect)

	inspectCmd := app.Command("inspect", "Print the header and lump directory of a map file.")
	inspectCmd.Arg("file", "BSP file path").Required().ExistingFileVar(&cfg.inspect.file)

	// parse command line arguments
	parsedCmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// enable verbose logging if requested
	if !cfg.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	opts := []bsp.Option{bsp.WithBufferSize(cfg.bufferSize), bsp.WithLogger(logger)}

	os.Exit(runCommand(parsedCmd, map[string]func() error{
		checksumCmd.FullCommand(): func() error {
			return checksumFiles(os.Stdout, cfg.checksum.files, cfg.checksum.format, cfg.checksum.concurrency, opts...)
		},
		verifyCmd.FullCommand(): func() error {
			return verifyFile(os.Stdout, cfg.verify.file, cfg.verify.expect, opts...)
		},
		inspectCmd.FullCommand(): func() error {
			return inspectFile(os.Stdout, cfg.inspect.file)
		},
	}))
}

// runCommand runs the handler of the parsed command and returns the exit code.
func runCommand(parsedCmd string, handlers map[string]func() error) int {
	handler, ok := handlers[parsedCmd]
	if !ok {
		level.Error(logger).Log("msg", "unknown command", "cmd", parsedCmd)
		return 1
	}
	return checkError(handler())
}

func checkError(err error) int {
	switch err {
	case nil:
		return 0
	case errMismatch:
		// The mismatch is already reported, so just exit with an error code.
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return 1
}
