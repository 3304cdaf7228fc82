package errors

import (
	"fmt"
	"sort"
	"strings"
)

type MissingEnvErr struct {
	EnvMap map[string]string
}

func (e MissingEnvErr) Error() string {
	// Get keys of missing environment variables
	missingKeys := make([]string, 0, len(e.EnvMap))
	for key, val := range e.EnvMap {
		if val == "" {
			missingKeys = append(missingKeys, key)
		}
	}
	sort.Strings(missingKeys)

	if len(missingKeys) > 0 {
		allKeys := strings.Join(missingKeys, ", ")
		return fmt.Sprintf("insufficient env variables: [%s]", allKeys)
	}
	return "insufficient env variables"
}

// MalformedSpecErr reports an API specification whose structure cannot be
// walked. Path is empty when the problem is at the document level.
type MalformedSpecErr struct {
	Path   string
	Reason string
	Err    error
}

func (e MalformedSpecErr) Error() string {
	msg := "malformed specification"
	if e.Path != "" {
		msg = fmt.Sprintf("%s at path [%s]", msg, e.Path)
	}
	if e.Reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e MalformedSpecErr) Unwrap() error {
	return e.Err
}
