package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/jovermann/pvview/demo"
)

func runGen(_ context.Context, args []string) error {
	flags := pflag.NewFlagSet("gen", pflag.ContinueOnError)
	days := flags.Int("days", 7, "number of days of demo data to generate")
	out := flags.String("out", ".", "output directory")
	if err := flags.Parse(args); err != nil {
		return err
	}

	paths, err := demo.Generate(*days, *out, time.Now())
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}
