package main

import (
	"fmt"
	"path/filepath"

	"oss.terrastruct.com/sigil/lib/version"
	"oss.terrastruct.com/sigil/lib/xmain"
)

func help(ms *xmain.State) {
	fmt.Fprintf(ms.Stdout, `%[1]s %[2]s
Usage:
  %[1]s [--config=sigil.toml] [--spread] [--watch] figure.json [diagram.json]
  %[1]s validate figure.json

%[1]s lays out figure.json and writes the positioned shapes as JSON.
It writes to stdout if an output path is not provided.

Use - to have %[1]s read from stdin or write to stdout.

Flags:
%[3]s

Subcommands:
  %[1]s validate figure.json - Validates figure.json
`, filepath.Base(ms.Name), version.Version, ms.Opts.Help())
}
