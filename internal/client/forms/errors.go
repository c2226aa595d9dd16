// Package forms validates user input locally, before anything is sent to the
// backend.
package forms

import (
	"errors"
	"sort"
	"strings"

	"github.com/dmitrijs2005/babycare/internal/common"
)

// FieldErrors maps a field name to its problem. All problems of one form are
// reported together.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// Is makes errors.Is(err, common.ErrValidation) hold for field errors.
func (fe FieldErrors) Is(target error) bool {
	return target == common.ErrValidation
}

// orNil returns nil for an empty set so callers can return it directly.
func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
