// 16 Oct 2026

package basecomp

import (
	"bufio"
	"errors"
	"strings"

	"github.com/andrew-torda/basecomp/pkg/zwrap"
)

const manifestCmmt = "#"

// ReadManifest returns the file names listed in fname, one per line,
// in order. White space around names is removed. Blank lines and lines
// starting with "#" are ignored. An empty list is an error.
func ReadManifest(fname string) (files []string, err error) {
	fp, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	defer func() {
		if e := fp.Close(); e != nil && err == nil {
			err = e
		}
	}()
	scanner := bufio.NewScanner(fp)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, manifestCmmt) {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no input files listed in " + fname)
	}
	return files, nil
}
