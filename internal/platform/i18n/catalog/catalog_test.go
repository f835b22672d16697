package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "es"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got, ok := bundle.Message("en-US", "pages.media.no_file"); !ok || got != "Please select an image first." {
		t.Fatalf("Message(no_file) = %q, %v", got, ok)
	}
}

func TestEmbeddedLocalesTranslateEveryBaseKey(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range bundle.Locales() {
		if missing := bundle.MissingKeys(locale); len(missing) > 0 {
			t.Fatalf("locale %s missing keys %v", locale, missing)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "en-US"
namespace: "core"
messages:
  "core.a": "base a"
  "core.b": "base b"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/es/core.yaml"), `locale: "es"
namespace: "core"
messages:
  "core.a": "es a"
`)
	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("LoadFromFS() error = %v", err)
	}
	if got, _ := bundle.Message("es", "core.a"); got != "es a" {
		t.Fatalf("Message(es, core.a) = %q, want %q", got, "es a")
	}
	if got, _ := bundle.Message("es", "core.b"); got != "base b" {
		t.Fatalf("Message(es, core.b) = %q, want %q", got, "base b")
	}
	if _, ok := bundle.Message("es", "core.missing"); ok {
		t.Fatal("expected missing key to report false")
	}
}

func TestBuilderFeedsMessagePrinter(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	builder, err := bundle.Builder()
	if err != nil {
		t.Fatalf("Builder() error = %v", err)
	}
	printer := message.NewPrinter(language.Spanish, message.Catalog(builder))
	if got := printer.Sprintf("core.nav.home"); got != "Inicio" {
		t.Fatalf("es nav.home = %q, want %q", got, "Inicio")
	}
	printer = message.NewPrinter(language.AmericanEnglish, message.Catalog(builder))
	if got := printer.Sprintf("core.footer.copyright", 2026); got != "© 2026 FireHorse USA. All rights reserved." {
		t.Fatalf("en footer = %q", got)
	}
}

func TestLoadFromFSRejectsKeyOutsideNamespace(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/pages.yaml"), `locale: "en-US"
namespace: "pages"
messages:
  "core.bad": "nope"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRejectsLocaleMismatch(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/core.yaml"), `locale: "es"
namespace: "core"
messages:
  "core.a": "a"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/es/core.yaml"), `locale: "es"
namespace: "core"
messages:
  "core.a": "a"
`)
	if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseCatalogFileRejectsMalformedEntries(t *testing.T) {
	tests := []string{
		"locale: \"en-US\"\nnamespace: \"core\"\nmessages:\n  \"core.a\" \"missing colon\"\n",
		"locale: \"en-US\"\nnamespace: \"core\"\nmessages:\n  \"core.a: \"x\"\n",
		"locale: \"en-US\"\n\"core.a\": \"before messages\"\n",
		"namespace: \"core\"\nmessages:\n  \"core.a\": \"x\"\n",
	}
	for _, input := range tests {
		if _, err := parseCatalogFile([]byte(input)); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestParseCatalogFileHandlesEscapesAndComments(t *testing.T) {
	parsed, err := parseCatalogFile([]byte("# comment\nlocale: \"en-US\"\nnamespace: \"core\"\nmessages:\n  \"core.quote\": \"say \\\"hi\\\"\"\n"))
	if err != nil {
		t.Fatalf("parseCatalogFile() error = %v", err)
	}
	if got := parsed.Messages["core.quote"]; got != `say "hi"` {
		t.Fatalf("core.quote = %q, want %q", got, `say "hi"`)
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
