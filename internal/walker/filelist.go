package walker

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// AddRootsFromList reads a delimited list of paths and appends each as
// an explicit root. Entries are newline-delimited, or NUL-delimited
// when nulSeparated is set (the "find -print0" convention). Blank
// entries are dropped.
func (w *Walker) AddRootsFromList(r io.Reader, nulSeparated bool) error {
	if nulSeparated {
		data, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("failed to read file list: %w", err)
		}
		for _, entry := range strings.Split(string(data), "\x00") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				w.roots = append(w.roots, entry)
			}
		}
		return nil
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		entry := strings.TrimSpace(sc.Text())
		if entry != "" {
			w.roots = append(w.roots, entry)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read file list: %w", err)
	}
	return nil
}
