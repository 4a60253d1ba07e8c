// 16 Oct 2026

package basecomp

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/andrew-torda/basecomp/pkg/comp"
)

const sep = "\t"

// warnExists checks if a filename exists and prints a warning
// if we will trash a file. It does not return an error.
func warnExists(fname string) {
	if _, err := os.Stat(fname); err == nil {
		log.WithField("file", fname).Warn("trashing old version")
	}
}

// WriteTable writes the table as tab separated text. The first line has
// the column names. Counts are integers. Content fractions are written
// with as many digits as a float32 needs.
func WriteTable(w io.Writer, tbl *comp.Table) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(comp.Header(), sep)); err != nil {
		return err
	}
	buf := make([]byte, 0, 256)
	for irow, pos := range tbl.Pos {
		buf = strconv.AppendInt(buf[:0], int64(pos), 10)
		for _, v := range tbl.Tail[irow] {
			buf = append(buf, sep...)
			buf = strconv.AppendUint(buf, v, 10)
		}
		for _, v := range tbl.Total[irow] {
			buf = append(buf, sep...)
			buf = strconv.AppendUint(buf, v, 10)
		}
		for _, v := range tbl.Content.Mat[irow] {
			buf = append(buf, sep...)
			buf = strconv.AppendFloat(buf, float64(v), 'g', -1, 32)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeTable writes to a named file or, given "-", to standard output.
func writeTable(fname string, tbl *comp.Table) (err error) {
	if fname == "-" {
		return WriteTable(os.Stdout, tbl)
	}
	warnExists(fname)
	fp, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("output file %v: %w", fname, err)
	}
	defer func() {
		if e := fp.Close(); e != nil && err == nil {
			err = fmt.Errorf("output file %v: %w", fname, e)
		}
	}()
	if err = WriteTable(fp, tbl); err != nil {
		return fmt.Errorf("output file %v: %w", fname, err)
	}
	return nil
}
