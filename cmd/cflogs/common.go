package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
)

const maxLineSize = 1024 * 1024

// readLines reads log lines from files. "-" means stdin. Empty lines are skipped.
func readLines(files []string) ([][]byte, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}

	var lines [][]byte
	for _, fpath := range files {
		var r io.Reader
		if fpath == "-" {
			r = os.Stdin
		} else {
			fd, err := os.Open(fpath)
			if err != nil {
				return nil, errors.Wrapf(err, "Failed to open %s", fpath)
			}
			defer fd.Close()
			r = fd
		}

		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), maxLineSize)
		for scanner.Scan() {
			if len(scanner.Bytes()) == 0 {
				continue
			}
			line := make([]byte, len(scanner.Bytes()))
			copy(line, scanner.Bytes())
			lines = append(lines, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrapf(err, "Failed to read %s", fpath)
		}
	}

	return lines, nil
}

func printValue(w io.Writer, v interface{}, pretty bool) error {
	if pretty {
		_, err := pp.Fprintln(w, v)
		return err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal")
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
