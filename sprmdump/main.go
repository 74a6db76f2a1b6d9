package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/hanpama/msdoc"
)

func main() {
	kindFlag := flag.String("kind", "chp", "property kind of -hex: chp, pap, sep or tap")
	hexFlag := flag.String("hex", "", "grpprl to decode, as hex digits")
	formatFlag := flag.String("format", "text", "output format: text, compact, markdown, csv or html")
	propsFlag := flag.Bool("props", false, "also list the property fields each grpprl changes")
	flag.Usage = usage
	flag.Parse()

	format, err := msdoc.ParseFormat(*formatFlag)
	if err != nil {
		fail("%v", err)
	}
	opts := []msdoc.Option{msdoc.WithFormat(format), msdoc.WithProperties(*propsFlag)}

	if *hexFlag != "" {
		kind, err := msdoc.ParseKind(*kindFlag)
		if err != nil {
			fail("%v", err)
		}
		grpprl, err := hex.DecodeString(strings.Join(strings.Fields(*hexFlag), ""))
		if err != nil {
			fail("Error decoding -hex: %v", err)
		}
		if err := msdoc.DumpGrpprl(kind, grpprl, os.Stdout, opts...); err != nil {
			fail("Error decoding grpprl: %v", err)
		}
		return
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	filename := flag.Arg(0)

	file, err := os.Open(filename)
	if err != nil {
		fail("Error opening file: %v", err)
	}
	defer file.Close()

	if err := msdoc.DumpDocument(file, os.Stdout, opts...); err != nil {
		fail("Error reading file: %v", err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <doc-file>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s [-kind chp|pap|sep|tap] -hex <grpprl>\n\n", os.Args[0])
	flag.PrintDefaults()
}

func fail(format string, args ...any) {
	color.New(color.FgRed).Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
