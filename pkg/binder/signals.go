package binder

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals binds the datastar signal payload into v using `json` tags. GET
// requests carry the payload in the "datastar" query parameter, other methods
// in the body. Requests without a payload are not applicable.
func Signals() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if !hasSignals(r) {
			return ErrBinderNotApplicable
		}
		if _, err := structValue(v, ErrFailedToParseSignals); err != nil {
			return err
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return errors.Join(ErrFailedToParseSignals, fmt.Errorf("read signals: %w", err))
		}
		return nil
	}
}

func hasSignals(r *http.Request) bool {
	if r.Method == http.MethodGet || r.Method == http.MethodDelete {
		return r.URL.Query().Get("datastar") != ""
	}
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") && r.ContentLength != 0
}
