package profile

import (
	"errors"
	"fmt"
	"strings"

	"overstats/lib/textutil"

	"github.com/antzucaro/matchr"
)

var (
	// ErrInvalidArgument is returned when a query is malformed, it never depends on the
	// contents of the profile page.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAmbiguousFragment is returned when a selector that should match at most once
	// matches more than once. It aborts the build.
	ErrAmbiguousFragment = errors.New("ambiguous fragment")
	// ErrStructuralParse is returned when a block of alternating name/value lines is
	// not well formed. It aborts the build.
	ErrStructuralParse = errors.New("structural parse error")
	// ErrDataNotFound is returned when a well formed query names data the profile
	// does not have.
	ErrDataNotFound = errors.New("data not found")
	// ErrModeUnavailable marks a mode whose container is missing from the page. The
	// builder skips such modes, it is only surfaced through telemetry.
	ErrModeUnavailable = errors.New("mode unavailable")
)

// minimum Jaro-Winkler similarity for a key to be suggested
const suggestionThreshold = 0.8

// NotFoundError describes which key of the model a query could not resolve.
type NotFoundError struct {
	// Path is the chain of keys that did resolve.
	Path []string
	Key  string
	// Suggestion is the most similar existing key, if any is similar enough.
	Suggestion string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	b.WriteString(ErrDataNotFound.Error())
	b.WriteString(": ")
	for _, p := range e.Path {
		b.WriteString(p)
		b.WriteString(" > ")
	}
	b.WriteString(fmt.Sprintf("%q", e.Key))
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf(" (did you mean %q?)", e.Suggestion))
	}
	return b.String()
}

func (e *NotFoundError) Unwrap() error {
	return ErrDataNotFound
}

func notFound(path []string, key string, candidates []string) error {
	normalizedKey := textutil.NormalizeName(key)

	var mostSimilarity float64
	var mostSimilar string
	for _, c := range candidates {
		// keys that only differ in case or spacing are always suggested
		if textutil.NormalizeName(c) == normalizedKey {
			mostSimilarity = 1
			mostSimilar = c
			break
		}
		similarity := matchr.JaroWinkler(key, c, false)
		if similarity > mostSimilarity {
			mostSimilarity = similarity
			mostSimilar = c
		}
	}
	err := &NotFoundError{
		Path: append([]string(nil), path...),
		Key:  key,
	}
	if mostSimilarity >= suggestionThreshold {
		err.Suggestion = mostSimilar
	}
	return err
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
