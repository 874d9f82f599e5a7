// Command jpegmeta is a small flag-based front end over the jpegexif
// library: a handful of boolean mode flags, no subcommands, JSON on
// stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmreyes/jpegexif"
)

func main() {
	var (
		simple    = flag.Bool("simple", false, "print the SimpleMetadata projection instead of raw tags")
		raw       = flag.Bool("raw", false, "print the full RawMetadata (the default output)")
		thumbnail = flag.String("thumbnail", "", "write the embedded thumbnail to this path, if present")
		parseData = flag.Bool("parse-image-data", false, "walk the entropy-coded scan instead of stopping at the first SOS")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: jpegmeta [-simple|-raw] [-thumbnail path] [-parse-image-data] <file.jpg>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg := jpegexif.Config{
		ParseImageData: *parseData,
		Logger:         jpegexif.WriterLogger{W: os.Stderr},
	}

	rm, err := jpegexif.Read(path, cfg)
	if err != nil {
		log.Fatalf("jpegmeta: %v", err)
	}

	if *thumbnail != "" {
		if len(rm.Thumbnail) == 0 {
			log.Fatalf("jpegmeta: %s has no embedded thumbnail", path)
		}
		if err := os.WriteFile(*thumbnail, rm.Thumbnail, 0o644); err != nil {
			log.Fatalf("jpegmeta: writing thumbnail: %v", err)
		}
	}

	var out any = rm
	if *simple {
		out = rm.Simple(path)
	} else if *raw {
		out = rm
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("jpegmeta: encoding output: %v", err)
	}
}
