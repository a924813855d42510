package meaning

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subdeck/internal/language"
)

func TestDecodeLemmaShape(t *testing.T) {
	dict, err := Decode([]byte(`{"lemmas":{"lettera":"Brief","Mago":"Zauberer"},"aliases":{"lettere":"Lettera"}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dict.Shape != ShapeLemma {
		t.Fatalf("Shape = %q", dict.Shape)
	}
	if dict.Lemmas["mago"] != "Zauberer" {
		t.Fatalf("expected lowercased lemma keys, got %v", dict.Lemmas)
	}
	if dict.Aliases["lettere"] != "lettera" {
		t.Fatalf("expected normalized alias target, got %v", dict.Aliases)
	}
}

func TestDecodeLegacyShape(t *testing.T) {
	dict, err := Decode([]byte(`{"gufo":"Eule","numero":42,"lemmas":"not an object"}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dict.Shape != ShapeLegacy {
		t.Fatalf("Shape = %q", dict.Shape)
	}
	if dict.Lemmas["gufo"] != "Eule" || dict.Lemmas["lemmas"] != "not an object" {
		t.Fatalf("unexpected lemmas: %v", dict.Lemmas)
	}
	if _, ok := dict.Lemmas["numero"]; ok {
		t.Fatal("expected non-string value to be ignored")
	}
	if len(dict.Aliases) != 0 {
		t.Fatalf("expected no aliases, got %v", dict.Aliases)
	}
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	dict, err := Decode([]byte("  \n"))
	if err != nil || dict.Len() != 0 || dict.Shape != ShapeEmpty {
		t.Fatalf("Decode(empty) = %+v, %v", dict, err)
	}
	if _, err := Decode([]byte(`["not","a","map"]`)); err == nil {
		t.Fatal("expected error for array input")
	}
}

func TestLoadFile(t *testing.T) {
	dict, err := LoadFile("")
	if err != nil || dict.Len() != 0 {
		t.Fatalf("LoadFile(empty path) = %+v, %v", dict, err)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(`{"casa":"Haus"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	dict, err = LoadFile(path)
	if err != nil || dict.Lemmas["casa"] != "Haus" {
		t.Fatalf("LoadFile = %+v, %v", dict, err)
	}
}

func TestLoadReader(t *testing.T) {
	dict, err := Load(strings.NewReader(`{"lemmas":{"bacchetta":"Zauberstab"}}`))
	if err != nil || dict.Lemmas["bacchetta"] != "Zauberstab" {
		t.Fatalf("Load = %+v, %v", dict, err)
	}
}

func newItalianResolver(t *testing.T, raw string) *Resolver {
	t.Helper()
	dict, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return NewResolver(dict, language.ForCode("it"))
}

func TestResolveAliasToLemma(t *testing.T) {
	r := newItalianResolver(t, `{"lemmas":{"lettera":"Brief"},"aliases":{"lettere":"lettera"}}`)
	if got := r.Resolve("lettere"); got != "Brief" {
		t.Fatalf("Resolve(lettere) = %q, want Brief", got)
	}
}

func TestLookupChain(t *testing.T) {
	r := newItalianResolver(t, `{
		"lemmas": {"mago":"Zauberer","buono":"gut","amica":"Freundin","scopa":"Besen","gufo":"Eule","bello":"schön"},
		"aliases": {"maghi":"mago","scope":"scopa","gufi":"gufo"}
	}`)
	tests := []struct {
		token string
		step  Step
		lemma string
		want  string
	}{
		{"Mago", StepExact, "mago", "Zauberer"},
		{"buon", StepApocope, "buono", "gut"},
		{"maghi", StepAlias, "mago", "Zauberer"},
		{"amiche", StepHeuristic, "amica", "Freundin"},
		{"buona", StepHeuristic, "buono", "gut"},
		{"belle", StepHeuristic, "bello", "schön"},
		{"bel", StepApocope, "bello", "schön"},
		{"sconosciuto", StepNone, "", ""},
		{"", StepNone, "", ""},
	}
	for _, tt := range tests {
		m := r.Lookup(tt.token)
		if m.Step != tt.step || m.Lemma != tt.lemma || m.Meaning != tt.want {
			t.Errorf("Lookup(%q) = %+v, want step=%q lemma=%q meaning=%q", tt.token, m, tt.step, tt.lemma, tt.want)
		}
	}
}

func TestAliasBeatsHeuristic(t *testing.T) {
	// "lettere" reaches "lettera" by suffix substitution, but the alias
	// points somewhere else and must win.
	r := newItalianResolver(t, `{"lemmas":{"lettera":"Brief","letterato":"Gelehrter"},"aliases":{"lettere":"letterato"}}`)
	m := r.Lookup("lettere")
	if m.Step != StepAlias || m.Meaning != "Gelehrter" {
		t.Fatalf("Lookup(lettere) = %+v, want alias match", m)
	}
}

func TestHeuristicUsesAliasesOfCandidates(t *testing.T) {
	r := newItalianResolver(t, `{"lemmas":{"topo":"Maus"},"aliases":{"topa":"topo"}}`)
	m := r.Lookup("tope")
	if m.Step != StepHeuristic || m.Meaning != "Maus" {
		t.Fatalf("Lookup(tope) = %+v", m)
	}
}

func TestLegacyDictionaryHasNoAliasLayer(t *testing.T) {
	r := newItalianResolver(t, `{"lettera":"Brief"}`)
	if got := r.Resolve("lettera"); got != "Brief" {
		t.Fatalf("Resolve(lettera) = %q", got)
	}
	if got := r.Resolve("lettere"); got != "Brief" {
		t.Fatalf("expected heuristic fallback over a legacy map, got %q", got)
	}
}

func TestResolverZeroDictionary(t *testing.T) {
	r := NewResolver(Dictionary{}, language.ForCode("it"))
	if got := r.Resolve("casa"); got != "" {
		t.Fatalf("expected empty meaning, got %q", got)
	}
}
