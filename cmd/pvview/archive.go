package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/jovermann/pvview/archive"
)

func runArchive(_ context.Context, args []string) error {
	flags := pflag.NewFlagSet("archive", pflag.ContinueOnError)
	codecName := flags.String("codec", "zstd", "compression algorithm: zstd, s2, or lz4")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: pvview archive <file> --codec zstd|s2|lz4")
	}
	path := flags.Arg(0)

	codecType, err := archive.ParseCompressionType(*codecName)
	if err != nil {
		return err
	}
	codec, err := archive.GetCodec(codecType)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("archive: reading %s: %w", path, err)
	}

	start := time.Now()
	compressed, err := codec.Compress(data)
	if err != nil {
		return fmt.Errorf("archive: compressing %s: %w", path, err)
	}
	elapsed := time.Since(start)

	outPath := path + "." + codecType.String()
	if err := os.WriteFile(outPath, compressed, 0o644); err != nil {
		return fmt.Errorf("archive: writing %s: %w", outPath, err)
	}

	stats := archive.CompressionStats{
		Algorithm:         codecType,
		OriginalSize:      int64(len(data)),
		CompressedSize:    int64(len(compressed)),
		CompressionTimeNs: elapsed.Nanoseconds(),
	}
	fmt.Printf("%s -> %s (%s, %.1f%% smaller)\n", path, outPath, codecType, stats.SpaceSavings())
	return nil
}
