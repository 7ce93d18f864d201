// Package textclean normalizes raw genetic data text into trimmed, non-empty lines.
package textclean

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Supported input encodings.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf-8"
)

// artifacts maps stray header characters to their replacement.
var artifacts = strings.NewReplacer(
	">", "",
	"'", "",
	"\u00b4", "", // acute accent
	"\u00ed", "",
	"\u0092", "", // cp1252 right single quote decoded as latin1
	"\u2019", "",
	"\u00a0", " ", // non-breaking space
)

// Clean replaces encoding artifacts in s.
func Clean(s string) string {
	return artifacts.Replace(s)
}

// decoder wraps r so it yields UTF-8 for the given encoding.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case EncodingLatin1, "iso-8859-1", "":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingUTF8, "utf8":
		return r, nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", encoding)
}

// ReadLines decodes r, cleans every line, trims whitespace and drops empty lines.
func ReadLines(r io.Reader, encoding string) ([]string, error) {
	dr, err := decoder(r, encoding)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(dr)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(Clean(scanner.Text()))
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}
	return lines, nil
}

// ReadFile reads and cleans the file at path. Use "-" for stdin.
func ReadFile(path, encoding string) ([]string, error) {
	if path == "-" {
		return ReadLines(os.Stdin, encoding)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	return ReadLines(f, encoding)
}
