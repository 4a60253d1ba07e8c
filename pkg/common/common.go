// 29 Apr 2020

package common

import (
	"fmt"
	"io"
	"os"
)

const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// WrtTemp writes a string to a temporary file and returns
// the filename. It is used all over the place in testing.
// The caller removes the file.
func WrtTemp(s string, pattern ...string) (string, error) {
	p := "_del_me_testing"
	if pattern != nil {
		p = pattern[0]
	}
	f_tmp, err := os.CreateTemp("", p)
	if err != nil {
		return "", fmt.Errorf("tempfile fail: %w", err)
	}
	defer f_tmp.Close()
	if _, err := io.WriteString(f_tmp, s); err != nil {
		return "", fmt.Errorf("writing string to temp file %v: %w", f_tmp.Name(), err)
	}
	return f_tmp.Name(), nil
}
