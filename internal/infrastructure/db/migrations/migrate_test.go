package migrations

import (
	"io"
	"strings"
	"testing"
)

func TestSource_FirstMigration(t *testing.T) {
	d, err := Source()
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	defer d.Close()

	v, err := d.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if v != 1 {
		t.Fatalf("first version = %d, want 1", v)
	}

	r, _, err := d.ReadUp(v)
	if err != nil {
		t.Fatalf("ReadUp: %v", err)
	}
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "ux_comisions_asesor_entidad_periodo") {
		t.Fatal("commission unique index missing from initial schema")
	}

	rd, _, err := d.ReadDown(v)
	if err != nil {
		t.Fatalf("ReadDown: %v", err)
	}
	rd.Close()
}

func TestUp_InvalidURL(t *testing.T) {
	if err := Up("nosuchdriver://x"); err == nil {
		t.Fatal("expected error for unknown database driver")
	}
}
