package pipeline

import (
	"bufio"
	"encoding/json"
	"io"
)

// maxLineBytes bounds a single JSONL line. Product descriptions and long
// reviews can run far past bufio's default 64KB.
const maxLineBytes = 8 << 20

// scanJSONL streams r line by line, invoking fn with each raw line. Blank
// lines are skipped. Returns the number of non-blank lines read and any
// scanner error.
func scanJSONL(r io.Reader, fn func(line []byte)) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lines := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(trimSpace(line)) == 0 {
			continue
		}
		lines++
		fn(line)
	}
	return lines, scanner.Err()
}

func trimSpace(b []byte) []byte {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// decodeLine unmarshals one JSONL line into v, reporting whether it parsed.
func decodeLine(line []byte, v any) bool {
	return json.Unmarshal(line, v) == nil
}
