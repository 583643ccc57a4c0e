// Package fasta reads FASTA files for the digest command. Parsing only;
// sequence validation happens in seq.New.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry.
type Record struct {
	// ID is the header up to the first whitespace
	ID string

	// Seq is the upper-cased sequence with newlines removed
	Seq string
}

// Read parses the FASTA file at path, or stdin when path is "-".
func Read(path string) ([]Record, error) {
	if path == "-" {
		return Parse(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// Parse reads FASTA records from r.
func Parse(r io.Reader) ([]Record, error) {
	var (
		records []Record
		id      string
		bases   strings.Builder
	)

	flush := func() {
		if id != "" {
			records = append(records, Record{ID: id, Seq: strings.ToUpper(bases.String())})
			bases.Reset()
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ">") {
			flush()
			id = strings.Fields(line[1:])[0]
			continue
		}
		if id == "" {
			return nil, fmt.Errorf("sequence data before any FASTA header")
		}
		bases.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flush()
	if len(records) == 0 {
		return nil, fmt.Errorf("no FASTA records found")
	}
	return records, nil
}
