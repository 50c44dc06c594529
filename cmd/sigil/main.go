package main

import (
	"context"
	"fmt"
	"time"

	"cdr.dev/slog"

	"oss.terrastruct.com/sigil/lib/log"
	"oss.terrastruct.com/sigil/lib/textmeasure"
	"oss.terrastruct.com/sigil/lib/version"
	"oss.terrastruct.com/sigil/lib/xmain"
	"oss.terrastruct.com/sigil/sigilfigure"
	"oss.terrastruct.com/sigil/sigillayout"
	"oss.terrastruct.com/sigil/sigillib"
)

func main() {
	xmain.Main(run)
}

func run(ctx context.Context, ms *xmain.State) (err error) {
	configFlag := ms.Opts.String("SIGIL_CONFIG", "config", "c", "", "path to a TOML file overriding layout ratios")
	spreadFlag, err := ms.Opts.Bool("SIGIL_SPREAD", "spread", "", false, "lay the items of a top-level arrangement out in a row")
	if err != nil {
		return err
	}
	gapFlag, err := ms.Opts.Float64("SIGIL_GAP", "gap", "", sigillib.DEFAULT_GAP, "gap between spread items")
	if err != nil {
		return err
	}
	watchFlag, err := ms.Opts.Bool("SIGIL_WATCH", "watch", "w", false, "watch the input for changes and lay it out again on every change")
	if err != nil {
		return err
	}
	fixedRulerFlag, err := ms.Opts.Bool("SIGIL_FIXED_RULER", "fixed-ruler", "", false, "measure text with fixed-advance metrics instead of the bundled font")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		ms.Opts.Warnf("%v: ignored", err)
		debugFlag = new(bool)
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	helpFlag, err := ms.Opts.Parse()
	if err != nil {
		return err
	}
	if helpFlag {
		help(ms)
		return nil
	}

	ctx = log.Stderr(ctx, *debugFlag)
	if *versionFlag {
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}

	args := ms.Opts.Flags.Args()
	if len(args) > 0 && args[0] == "validate" {
		if len(args) != 2 {
			return xmain.UsageErrorf("validate takes exactly one input file")
		}
		return validate(ctx, ms, args[1])
	}

	if len(args) == 0 {
		help(ms)
		return nil
	}
	inputPath, outputPath, err := xmain.IOPaths(args)
	if err != nil {
		return err
	}

	opts := &sigillib.LayoutOptions{
		Spread: *spreadFlag,
		Gap:    *gapFlag,
	}
	if *configFlag != "" {
		cfg, err := sigillayout.LoadConfig(*configFlag)
		if err != nil {
			return err
		}
		opts.Config = &cfg
	}
	if *fixedRulerFlag {
		opts.Ruler = textmeasure.NewFixedRuler()
	}

	if *watchFlag {
		if xmain.IsStdio(inputPath) || xmain.IsStdio(outputPath) {
			return xmain.UsageErrorf("--watch needs an input and an output file")
		}
		w, err := newWatcher(ctx, ms, opts, inputPath, outputPath)
		if err != nil {
			return err
		}
		return w.run()
	}

	start := time.Now()
	err = compile(ctx, ms, opts, inputPath, outputPath)
	if err != nil {
		return err
	}
	if !xmain.IsStdio(outputPath) {
		ms.Log.Success.Printf("successfully laid out %s to %s in %s", inputPath, outputPath, time.Since(start))
	}
	return nil
}

func compile(ctx context.Context, ms *xmain.State, opts *sigillib.LayoutOptions, inputPath, outputPath string) error {
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	ctx = log.WithFields(ctx, slog.F("input", inputPath))
	res, err := sigillib.LayoutJSON(ctx, input, opts)
	if err != nil {
		return err
	}
	return ms.WriteJSON(outputPath, res.Diagram)
}

func validate(ctx context.Context, ms *xmain.State, inputPath string) error {
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	fig, err := sigilfigure.Deserialize(input)
	if err != nil {
		return err
	}
	err = sigilfigure.Validate(fig)
	if err != nil {
		return err
	}
	log.Debug(ctx, "validated figure", slog.F("figures", sigilfigure.Count(fig)))
	ms.Log.Success.Printf("Success! [%s] is a valid figure.", inputPath)
	return nil
}
