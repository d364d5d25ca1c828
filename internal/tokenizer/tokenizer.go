// Package tokenizer estimates token counts for the files a manifest leaves visible.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/temirov/claudius/internal/utils"
)

const (
	fallbackEncodingName     = "cl100k_base"
	errorFallbackEncoding    = "load %s encoding: %w"
	errorMissingEncodingText = "tiktoken encoding is not loaded"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// Config selects the tokenizer model.
type Config struct {
	Model string
}

// modelPrefixes lists model families tiktoken knows encodings for.
var modelPrefixes = []string{
	"gpt-",
	"o1",
	"o3",
	"o4",
	"text-embedding",
	"davinci",
	"curie",
	"babbage",
	"ada",
	"code-",
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, errors.New(errorMissingEncodingText)
	}
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

// NewCounter returns a tiktoken Counter for the requested model. Models without
// a known encoding use cl100k_base. The returned string names the model or the
// encoding actually used.
func NewCounter(config Config) (Counter, string, error) {
	modelName := strings.TrimSpace(config.Model)
	if modelName == "" {
		modelName = utils.DefaultTokenizerModel
	}
	normalizedModel := strings.ToLower(modelName)

	if hasKnownEncoding(normalizedModel) {
		encoding, encodingError := tiktoken.EncodingForModel(normalizedModel)
		if encodingError == nil && encoding != nil {
			return encodingCounter{encoding: encoding, name: normalizedModel}, modelName, nil
		}
	}

	fallback, fallbackError := tiktoken.GetEncoding(fallbackEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf(errorFallbackEncoding, fallbackEncodingName, fallbackError)
	}
	return encodingCounter{encoding: fallback, name: fallbackEncodingName}, fallbackEncodingName, nil
}

func hasKnownEncoding(modelName string) bool {
	for _, prefix := range modelPrefixes {
		if strings.HasPrefix(modelName, prefix) {
			return true
		}
	}
	return false
}
