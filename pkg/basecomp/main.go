// 16 Oct 2026

// Package basecomp is the driver. It reads a list of fastq files, runs
// every read through comp.Analyze, builds the table and writes it as
// tab separated text.
package basecomp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/basecomp/pkg/comp"
	"github.com/andrew-torda/basecomp/pkg/fastq"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	Input   string // file with the list of fastq files, one per line
	Output  string // output tsv, "-" for standard output
	NJob    int    // files to read at the same time
	Span    int    // rows 1..Span are always written
	Upper   bool   // upper case reads before counting
	Verbose bool   // debug logging
	Time    bool   // do we want to print out run time ?
}

// checkCtxEvery is how many reads we process between looking to see
// if another file has failed.
const checkCtxEvery = 1 << 14

// analyzeFile reads every sequence in one file and adds it to acc.
func analyzeFile(ctx context.Context, fname string, opts *fastq.Options, acc *comp.Accum) (err error) {
	src, err := fastq.Open(fname, opts)
	if err != nil {
		return err
	}
	defer func() {
		if e := src.Close(); e != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", fname, e)
		}
	}()
	var n int64
	for {
		s, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		acc.Add(s)
		if n++; n%checkCtxEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	log.WithFields(log.Fields{"file": fname, "reads": n}).Debug("finished file")
	return nil
}

// Run analyses all the files and returns the merged accumulators.
// Each file has its own accumulators. Up to njob files are read at the
// same time. The result does not depend on njob.
func Run(ctx context.Context, files []string, opts *fastq.Options, njob int) (*comp.Accum, error) {
	if njob < 1 {
		njob = 1
	}
	accs := make([]*comp.Accum, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(njob)
	for i, fname := range files {
		i, fname := i, fname // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err // some other file failed
			}
			log.WithField("file", fname).Info("reading")
			acc := comp.NewAccum()
			if err := analyzeFile(ctx, fname, opts, acc); err != nil {
				return err
			}
			accs[i] = acc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := comp.NewAccum()
	for _, acc := range accs {
		total.Merge(acc)
	}
	return total, nil
}

// Mymain is the main function after the command line has been parsed.
func Mymain(flags *CmdFlag) error {
	if flags.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if flags.Time {
		startTime := time.Now()
		end := func() { // Wrapping in a closure is helpful. Gives the right time.
			log.WithField("ms", time.Since(startTime).Milliseconds()).Info("finished")
		}
		defer end()
	}
	if flags.Input == "" || flags.Output == "" {
		return errors.New("need both input list and output file names")
	}
	files, err := ReadManifest(flags.Input)
	if err != nil {
		return fmt.Errorf("reading list of input files: %w", err)
	}
	opts := &fastq.Options{Upper: flags.Upper}
	acc, err := Run(context.Background(), files, opts, flags.NJob)
	if err != nil {
		return fmt.Errorf("fail reading sequences: %w", err)
	}
	log.WithFields(log.Fields{"files": len(files), "reads": acc.NRead}).Info("all reads counted")

	tbl := comp.BuildAccum(acc, flags.Span)
	comp.Normalize(tbl)
	return writeTable(flags.Output, tbl)
}
