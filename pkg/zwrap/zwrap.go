// Package zwrap opens input files which may or may not be gzip
// compressed. The caller gets back one io.ReadCloser. Upon calling
// Close, the decompressor will be closed, followed by the underlying
// file.
// Regular files are memory mapped. Anything else, such as a pipe or
// standard input, is read as a stream.

package zwrap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/pgzip"
)

// gzMagic starts every gzip stream.
var gzMagic = []byte{0x1f, 0x8b}

// Stdin is the file name which means standard input.
const Stdin = "-"

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	zrdr *pgzip.Reader
}

// Close closes the decompressor, then the underlying backing readCloser.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Compressed tells us if we are decompressing.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source which must be gzip compressed and wraps it
// so the correct Close and Read will be called. On error, the source
// is not closed.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := pgzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, zrdr: zrdr}, nil
}

// bufRdCls lets us peek at a stream and still close it.
type bufRdCls struct {
	*bufio.Reader
	c io.Closer
}

func (b bufRdCls) Close() error { return b.c.Close() }

// WrapStream looks at the first bytes of a stream which cannot seek.
// If they look like gzip, the stream is decompressed. On error, fpIn
// is closed.
func WrapStream(fpIn io.ReadCloser) (*FpGzip, error) {
	b := bufRdCls{Reader: bufio.NewReader(fpIn), c: fpIn}
	if head, _ := b.Peek(len(gzMagic)); !bytes.Equal(head, gzMagic) {
		return &FpGzip{fp: b}, nil
	}
	fpz, err := Wrap(b)
	if err != nil {
		fpIn.Close()
		return nil, err
	}
	return fpz, nil
}

// mapped is a read-only memory mapped file. mm is nil if the
// file was empty, since one cannot map zero bytes.
type mapped struct {
	*bytes.Reader
	mm mmap.MMap
	fp *os.File
}

// Close unmaps and closes the file.
func (m *mapped) Close() error {
	var err error
	if m.mm != nil {
		err = m.mm.Unmap()
	}
	return errors.Join(err, m.fp.Close())
}

// mapFile maps the whole of an open, regular file.
func mapFile(fp *os.File, size int64) (*mapped, error) {
	m := &mapped{fp: fp}
	if size > 0 {
		mm, err := mmap.Map(fp, mmap.RDONLY, 0)
		if err != nil {
			return nil, err
		}
		m.mm = mm
	}
	m.Reader = bytes.NewReader(m.mm)
	return m, nil
}

// Open opens a file for reading and decompresses it if it is gzipped.
// We look at the contents, not the name, so "reads.fq" may be compressed
// and "reads.fq.gz" may not be. A name of "-" means standard input.
func Open(fname string) (*FpGzip, error) {
	if fname == Stdin {
		return WrapStream(os.Stdin)
	}
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	fi, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return WrapStream(fp)
	}

	m, err := mapFile(fp, fi.Size())
	if err != nil {
		fp.Close()
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	if !bytes.HasPrefix(m.mm, gzMagic) {
		return &FpGzip{fp: m}, nil
	}
	fpz, err := Wrap(m)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return fpz, nil
}
