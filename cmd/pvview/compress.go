package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/jovermann/pvview/compact"
)

func runCompress(_ context.Context, args []string) error {
	flags := pflag.NewFlagSet("compress", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		return fmt.Errorf("usage: pvview compress <in> <out>")
	}

	stats, err := compact.Compress(flags.Arg(0), flags.Arg(1))
	if err != nil {
		return err
	}
	fmt.Printf("events=%d series=%d original=%d bytes compressed=%d bytes savings=%.1f%%\n",
		stats.OriginalEvents, stats.SeriesCount, stats.OriginalBytes, stats.CompressedBytes, stats.SpaceSavings()*100)
	return nil
}
