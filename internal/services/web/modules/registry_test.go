package modules

import (
	"testing"

	module "github.com/firehorseusa/firehorse/internal/services/web/module"
)

func TestDefaultModulesOrder(t *testing.T) {
	t.Parallel()

	all := DefaultModules(Dependencies{})
	want := []string{"register", "media", "home"}
	if len(all) != len(want) {
		t.Fatalf("module count = %d, want %d", len(all), len(want))
	}
	for i, id := range want {
		if got := all[i].ID(); got != id {
			t.Fatalf("module[%d] id = %q, want %q", i, got, id)
		}
	}
}

func TestDefaultModulesHaveUniquePrefixes(t *testing.T) {
	t.Parallel()

	seen := map[string]struct{}{}
	for _, m := range DefaultModules(Dependencies{}) {
		mount, err := m.Mount()
		if err != nil {
			t.Fatalf("module %q mount error = %v", m.ID(), err)
		}
		if mount.Prefix == "" {
			t.Fatalf("module %q prefix is empty", m.ID())
		}
		if _, ok := seen[mount.Prefix]; ok {
			t.Fatalf("duplicate mount prefix %q", mount.Prefix)
		}
		seen[mount.Prefix] = struct{}{}
	}
}

func TestDefaultModulesWithoutGatewaysReportUnhealthy(t *testing.T) {
	t.Parallel()

	for _, m := range DefaultModules(Dependencies{}) {
		reporter, ok := m.(module.HealthReporter)
		if !ok {
			continue
		}
		if reporter.Healthy() {
			t.Fatalf("module %q reports healthy without a gateway", m.ID())
		}
	}
}
