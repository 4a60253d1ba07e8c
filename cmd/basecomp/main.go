// 17 Oct 2026
// Read a list of fastq files and write base composition statistics
// as a tab separated table.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	log "github.com/sirupsen/logrus"

	"github.com/andrew-torda/basecomp/pkg/basecomp"
	. "github.com/andrew-torda/basecomp/pkg/common"
	"github.com/andrew-torda/basecomp/pkg/comp"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage:", path.Base(os.Args[0]), "-i file_list -o out.tsv [flags]")
	flag.PrintDefaults()
}

func main() {
	var flags basecomp.CmdFlag
	const inHelp = "Input: text file listing fastq files, one per line"
	const outHelp = "Output: name of output tsv file, - for standard output"
	flag.StringVar(&flags.Input, "i", "", inHelp)
	flag.StringVar(&flags.Input, "input", "", inHelp)
	flag.StringVar(&flags.Output, "o", "", outHelp)
	flag.StringVar(&flags.Output, "output", "", outHelp)
	flag.IntVar(&flags.NJob, "j", 1, "number of files to read at the same time")
	flag.IntVar(&flags.Span, "s", comp.DefaultSpan, "positions 1..span are always in the table")
	flag.BoolVar(&flags.Upper, "u", false, "upper case reads before counting")
	flag.BoolVar(&flags.Verbose, "v", false, "verbose, debug logging")
	flag.BoolVar(&flags.Time, "t", false, "print out timing information")
	flag.Usage = usage
	flag.Parse()
	if flags.Input == "" || flags.Output == "" || flag.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "input and output names are required, and nothing else")
		usage()
		os.Exit(ExitUsageError)
	}

	if err := basecomp.Mymain(&flags); err != nil {
		log.Error(err)
		os.Exit(ExitFailure)
	}
	os.Exit(ExitSuccess)
}
