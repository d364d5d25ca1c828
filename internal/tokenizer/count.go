package tokenizer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

const errorReadFileFormat = "reading %s: %w"

var errNilCounter = errors.New("nil tokenizer counter")

// CountResult holds the tokens of one file. Counted is false when the content
// is not text and was skipped.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes counts tokens in data. Content containing NUL bytes or invalid
// UTF-8 is reported as not counted.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	if !isText(data) {
		return CountResult{}, nil
	}
	tokens, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountFile reads filePath and counts its tokens.
//
// #nosec G304
func CountFile(counter Counter, filePath string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errNilCounter
	}
	data, readError := os.ReadFile(filePath)
	if readError != nil {
		return CountResult{}, fmt.Errorf(errorReadFileFormat, filePath, readError)
	}
	return CountBytes(counter, data)
}

func isText(data []byte) bool {
	return bytes.IndexByte(data, 0) < 0 && utf8.Valid(data)
}
