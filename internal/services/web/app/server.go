package app

import (
	"fmt"
	"net/http"
)

// BuildRootHandler composes a root mux from the configured modules.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	if len(cfg.Modules) == 0 {
		return nil, fmt.Errorf("at least one module is required")
	}
	return Compose(ComposeInput{
		Modules:             cfg.Modules,
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
}
