package generator

import (
	"strings"
	"testing"
)

func TestFrontmatterOrderAndMerge(t *testing.T) {
	t.Parallel()

	fm := NewFrontmatter()
	fm.Set("name", "reviewer")
	fm.Set("description", "Reviews changes")
	fm.Merge(map[string]any{
		"description": "Overridden",
		"zeta":        1,
		"alpha":       2,
	})

	out, err := fm.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "name: reviewer\ndescription: Overridden\nalpha: 2\nzeta: 1\n"
	if out != want {
		t.Errorf("Render =\n%q\nwant\n%q", out, want)
	}
}

func TestFrontmatterRawValue(t *testing.T) {
	t.Parallel()

	fm := NewFrontmatter()
	fm.Set("applyTo", RawValue(`"**/*.go"`))

	out, err := fm.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "applyTo: \"**/*.go\"\n" {
		t.Errorf("Render = %q, raw value should keep its quoting", out)
	}
}

func TestFrontmatterMultilineValue(t *testing.T) {
	t.Parallel()

	fm := NewFrontmatter()
	fm.Set("tools", []string{"search", "fetch"})

	out, err := fm.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "tools:\n  - search\n  - fetch\n") {
		t.Errorf("Render = %q, want block-form sequence", out)
	}
}

func TestFrontmatterRepeatedSetKeepsPosition(t *testing.T) {
	t.Parallel()

	fm := NewFrontmatter()
	fm.Set("a", 1)
	fm.Set("b", 2)
	fm.Set("a", 3)

	out, err := fm.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if out != "a: 3\nb: 2\n" {
		t.Errorf("Render = %q, repeated key should stay first", out)
	}
}

func TestJSONObjectOrder(t *testing.T) {
	t.Parallel()

	obj := &jsonObject{}
	obj.set("zeta", 1)
	obj.set("alpha", 2)
	obj.set("zeta", 3)

	data, err := obj.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(data) != `{"zeta":3,"alpha":2}` {
		t.Errorf("MarshalJSON = %s, want insertion order preserved", data)
	}
	if obj.len() != 2 {
		t.Errorf("len = %d, want 2", obj.len())
	}
}
