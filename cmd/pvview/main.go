// Command pvview dumps, generates, compresses, archives, serves, and
// collects time series data stored in the .tsdb binary log format.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type verb struct {
	fn func(ctx context.Context, args []string) error
}

var verbs = map[string]verb{
	"dump":     {runDump},
	"gen":      {runGen},
	"compress": {runCompress},
	"archive":  {runArchive},
	"serve":    {runServe},
	"collect":  {runCollect},
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pvview <command> [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  dump <file>                       dump a .tsdb file event by event")
	fmt.Fprintln(os.Stderr, "  gen --days N --out DIR             generate N days of demo data")
	fmt.Fprintln(os.Stderr, "  compress <in> <out>                rewrite a log to its narrowest format")
	fmt.Fprintln(os.Stderr, "  archive <file> --codec zstd|s2|lz4 archive a finished daily file")
	fmt.Fprintln(os.Stderr, "  serve --config FILE                run the query HTTP API")
	fmt.Fprintln(os.Stderr, "  collect --config FILE              run the ingest collector")
}

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		usage()
		return 2
	}

	v, ok := verbs[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "pvview: unknown command %q\n", os.Args[1])
		usage()
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := v.fn(ctx, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "pvview: %s: %v\n", os.Args[1], err)
		return 2
	}
	return 0
}
