package profile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteCollection writes each record as a label line followed by a sequence line.
func WriteCollection(w io.Writer, c *Collection) error {
	bw := bufio.NewWriter(w)
	for _, r := range c.Records {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n", r.Label, r.Sequence); err != nil {
			return fmt.Errorf("write record %s: %w", r.Label, err)
		}
	}
	return bw.Flush()
}

// ReadCollection reads label/sequence line pairs written by WriteCollection.
// Pairs with an empty sequence line are skipped, as is a trailing unpaired label.
func ReadCollection(r io.Reader, locus string) (*Collection, error) {
	scanner := bufio.NewScanner(r)
	// Sequence lines can be long
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan profiles: %w", err)
	}

	c := NewCollection(locus)
	for i := 0; i+1 < len(lines); i += 2 {
		seq := strings.TrimSpace(lines[i+1])
		if seq == "" {
			continue
		}
		c.Add(strings.TrimSpace(lines[i]), seq)
	}
	return c, nil
}
