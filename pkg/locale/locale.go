// Package locale canonicalizes BCP 47 locale ids and negotiates the best
// available locale from an Accept-Language header.
package locale

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ErrInvalidTag is returned by Normalize for ids that are not BCP 47 tags.
var ErrInvalidTag = errors.New("locale: invalid language tag")

// maxAcceptLanguageLength bounds the header parsed by Match.
const maxAcceptLanguageLength = 4096

// Normalize returns the canonical form of tag: "en_us" becomes "en-US".
func Normalize(tag string) (string, error) {
	tag = strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")
	if tag == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidTag)
	}

	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	return t.String(), nil
}

// Match picks the available locale best matching an Accept-Language header.
// Quality values are honored and "en-GB" falls back to an available "en-US"
// when no better candidate exists. With no usable match the first available
// locale is returned; with nothing available the result is "".
func Match(acceptLanguage string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return available[0]
	}

	supported := make([]language.Tag, 0, len(available))
	indexes := make([]int, 0, len(available))
	for i, id := range available {
		t, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
		if err != nil {
			continue
		}
		supported = append(supported, t)
		indexes = append(indexes, i)
	}
	if len(supported) == 0 {
		return available[0]
	}

	_, index, confidence := language.NewMatcher(supported).Match(desired...)
	if confidence == language.No {
		return available[0]
	}
	return available[indexes[index]]
}
