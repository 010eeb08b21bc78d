package idgen

import (
	"strings"
	"testing"
	"time"
)

func TestID(t *testing.T) {
	seen := make(map[string]struct{})
	for range 1000 {
		id := ID()
		if len(id) != IDLen {
			t.Fatalf("bad id length: expected = %v, got = %v", IDLen, len(id))
		}
		for _, c := range id {
			if !strings.ContainsRune(idAlphabet, c) {
				t.Fatalf("bad char %q in id %q", c, id)
			}
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIDOrder(t *testing.T) {
	a := ID()
	time.Sleep(5 * time.Millisecond)
	b := ID()
	if a[:10] >= b[:10] {
		t.Fatalf("ids must be ordered by time: %q >= %q", a, b)
	}
}

func TestSecureKey(t *testing.T) {
	a, err := SecureKey(32)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	b, err := SecureKey(32)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	if len(a) != 32 || string(a) == string(b) {
		t.Fatalf("bad keys")
	}
}
