// 15 Oct 2026

// Package randseq writes random reads in fastq format. It is used for
// testing and benchmarking.
package randseq

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
)

const dfltLetters = "ACGT"

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed   int64     // random number seed
	Wrtr    io.Writer // where we write to
	Cmmt    string    // Comment for the sequences
	Nseq    int       // number of sequences
	Len     int       // Length of sequences
	MinLen  int       // if > 0, lengths vary from MinLen to Len
	Letters string    // symbols to draw from, "ACGT" if empty
	LineLen int       // if > 0, break sequence and quality lines
	MkErr   bool      // Add an error, by shortening the last quality
}

type read struct {
	seq  []byte
	last bool
}

// getseq returns a byte slice with a random sequence in it
func getseq(args *RandSeqArgs, rnd *rand.Rand) []byte {
	n := args.Len
	if args.MinLen > 0 && args.MinLen < args.Len {
		n = args.MinLen + rnd.Intn(args.Len-args.MinLen+1)
	}
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = args.Letters[rnd.Intn(len(args.Letters))]
	}
	return ret
}

// wrtLines writes s, broken into lines of width characters.
func wrtLines(w io.Writer, s []byte, width int) error {
	if width <= 0 {
		width = len(s) + 1
	}
	for ; len(s) > width; s = s[width:] {
		if _, err := fmt.Fprintf(w, "%s\n", s[:width]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s\n", s)
	return err
}

// writeseq takes reads from the channel, adds a header and quality line
// and writes them out. n is the number of the sequence, so the output has
// header lines "@something 1, @something 2..."
func writeseq(sChan <-chan read, args *RandSeqArgs, wg *sync.WaitGroup, err *error) {
	defer wg.Done()
	width := len(fmt.Sprintf("%d", args.Nseq))
	var i int
	for r := range sChan {
		i++
		if *err != nil {
			continue //         keep draining so the sender is not stuck
		}
		qual := bytes.Repeat([]byte{'I'}, len(r.seq))
		if r.last && args.MkErr && len(qual) > 0 {
			qual = qual[:len(qual)-1]
		}
		if _, e := fmt.Fprintf(args.Wrtr, "@%s %[2]*d\n", args.Cmmt, width, i); e != nil {
			*err = e
			continue
		}
		if e := wrtLines(args.Wrtr, r.seq, args.LineLen); e != nil {
			*err = e
			continue
		}
		if _, e := io.WriteString(args.Wrtr, "+\n"); e != nil {
			*err = e
			continue
		}
		*err = wrtLines(args.Wrtr, qual, args.LineLen)
	}
}

// RandSeqMain writes random reads to an io.Writer.
func RandSeqMain(args *RandSeqArgs) error {
	if args.Wrtr == nil {
		return errors.New("randseq: no writer")
	}
	if args.Letters == "" {
		args.Letters = dfltLetters
	}
	var wg sync.WaitGroup
	var err error
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan read)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &err)
	for i := 0; i < args.Nseq; i++ {
		sChan <- read{seq: getseq(args, rnd), last: i == args.Nseq-1}
	}
	close(sChan)
	wg.Wait()
	return err
}

// Reads returns the sequences RandSeqMain would write with these
// arguments, without writing anything.
func Reads(args RandSeqArgs) [][]byte {
	if args.Letters == "" {
		args.Letters = dfltLetters
	}
	rnd := rand.New(rand.NewSource(args.Iseed))
	ret := make([][]byte, args.Nseq)
	for i := range ret {
		ret[i] = getseq(&args, rnd)
	}
	return ret
}
