package persona

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSeedCatalogIsValid(t *testing.T) {
	catalog, err := NewCatalog(Seed())
	if err != nil {
		t.Fatalf("NewCatalog(Seed()) err: %v", err)
	}

	personas := catalog.List()
	if len(personas) != catalog.Len() {
		t.Fatalf("List length %d != Len %d", len(personas), catalog.Len())
	}

	seen := make(map[string]int)
	for _, p := range personas {
		seen[p.ID]++
		if p.Name == "" || p.Catchphrase == "" {
			t.Fatalf("persona %s missing name or catchphrase", p.ID)
		}
	}
	if len(seen) != len(personas) {
		t.Fatalf("expected %d distinct ids, got %d", len(personas), len(seen))
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("persona %s listed %d times", id, count)
		}
	}
}

func TestCatalogListKeepsDefinitionOrder(t *testing.T) {
	seed := Seed()
	catalog := MustCatalog(seed)

	for i, p := range catalog.List() {
		if p.ID != seed[i].ID {
			t.Fatalf("position %d: got %s want %s", i, p.ID, seed[i].ID)
		}
	}
}

func TestCatalogFindByID(t *testing.T) {
	catalog := MustCatalog(Seed())

	got, err := catalog.FindByID("teacher-einstein")
	if err != nil {
		t.Fatalf("FindByID err: %v", err)
	}
	if got.Name != "爱因斯坦老师" {
		t.Fatalf("unexpected name: %s", got.Name)
	}
	if got.Catchphrase != "想象力比知识更重要" {
		t.Fatalf("unexpected catchphrase: %s", got.Catchphrase)
	}

	again, err := catalog.FindByID("teacher-einstein")
	if err != nil {
		t.Fatalf("second FindByID err: %v", err)
	}
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("lookup not idempotent: %+v vs %+v", got, again)
	}
}

func TestCatalogFindByIDNotFound(t *testing.T) {
	catalog := MustCatalog(Seed())

	_, err := catalog.FindByID("nonexistent-id")
	if !errors.Is(err, ErrPersonaNotFound) {
		t.Fatalf("expected ErrPersonaNotFound, got %v", err)
	}
}

func TestCatalogIsolatedFromCallers(t *testing.T) {
	seed := Seed()
	catalog := MustCatalog(seed)

	seed[0].Name = "changed"
	seed[0].Specialty[0] = "changed"

	listed := catalog.List()
	listed[0].Specialty[0] = "also changed"

	got, err := catalog.FindByID(seed[0].ID)
	if err != nil {
		t.Fatalf("FindByID err: %v", err)
	}
	if got.Name == "changed" || got.Specialty[0] != Seed()[0].Specialty[0] {
		t.Fatalf("catalog was mutated through a caller slice: %+v", got)
	}
}

func TestNewCatalogRejectsInvalidInput(t *testing.T) {
	valid := Persona{ID: "a", Name: "A", Catchphrase: "hi"}

	cases := map[string][]Persona{
		"empty":             nil,
		"missing id":        {{Name: "A", Catchphrase: "hi"}},
		"duplicate id":      {valid, valid},
		"missing name":      {{ID: "a", Catchphrase: "hi"}},
		"missing catchline": {{ID: "a", Name: "A"}},
	}

	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewCatalog(items); !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "personas.toml")
	content := `
[[persona]]
id = "teacher-newton"
name = "牛顿老师"
specialty = ["力学", "微积分"]
teaching_style = "从苹果落地讲到万有引力"
catchphrase = "如果说我看得比别人更远些，那是因为我站在巨人的肩膀上"

[persona.template]
prefix = "先观察，再归纳。"
suffix = "试着写出你的推导。"

[[persona]]
id = "teacher-lu-xun"
name = "鲁迅老师"
teaching_style = "文字犀利，直指要害"
catchphrase = "世上本没有路，走的人多了，也便成了路"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	personas, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile err: %v", err)
	}
	if len(personas) != 2 {
		t.Fatalf("expected 2 personas, got %d", len(personas))
	}

	newton := personas[0]
	if newton.ID != "teacher-newton" || newton.Template.Prefix != "先观察，再归纳。" {
		t.Fatalf("unexpected first persona: %+v", newton)
	}
	if !reflect.DeepEqual(newton.Specialty, []string{"力学", "微积分"}) {
		t.Fatalf("unexpected specialty: %v", newton.Specialty)
	}
	if personas[1].Template != (Template{}) {
		t.Fatalf("expected empty template, got %+v", personas[1].Template)
	}

	if _, err := NewCatalog(personas); err != nil {
		t.Fatalf("loaded personas should form a valid catalog: %v", err)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(`
[[persona]]
id = "x"
name = "X"
catchphrase = "y"
catch_phrase = "typo"
`)
	if !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
