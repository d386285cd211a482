package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/pflag"

	"github.com/jovermann/pvview/logfile"
)

func runDump(_ context.Context, args []string) error {
	flags := pflag.NewFlagSet("dump", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: pvview dump <file>")
	}
	path := flags.Arg(0)

	rd, err := logfile.Read(path)
	if err != nil {
		return err
	}

	series := rd.Series()
	sort.Strings(series)
	fmt.Printf("series=%d\n", len(series))
	for _, name := range series {
		id, _ := rd.SeriesFormat(name)
		fmt.Printf("  - %s: format=0x%02x\n", name, uint8(id))
	}

	events := rd.Events()
	fmt.Printf("events=%d\n", len(events))
	var prevTS uint64
	havePrev := false
	for i, ev := range events {
		rel := "ABS"
		if havePrev && ev.TimestampMs >= prevTS {
			rel = fmt.Sprintf("+%d", ev.TimestampMs-prevTS)
		}
		prevTS, havePrev = ev.TimestampMs, true
		ts := time.UnixMilli(int64(ev.TimestampMs)).UTC().Format("2006-01-02 15:04:05.000")
		fmt.Printf("  [%d] ts_abs=%d (%s) ts_rel=%s series=%s value=%s\n",
			i, ev.TimestampMs, ts, rel, ev.Series, ev.Value.String())
	}

	if rd.EndedWithEOF() {
		fmt.Println("ended with EOF marker")
	}
	return nil
}
