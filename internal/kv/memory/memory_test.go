package memory

import "testing"

func TestMemoryStore(t *testing.T) {
	s := New()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("expected miss")
	}
	if err := s.Set("refresh_token", []byte("r1")); err != nil {
		t.Fatal(err)
	}
	if b, ok := s.Get("refresh_token"); !ok || string(b) != "r1" {
		t.Fatalf("Get = %q, %v", b, ok)
	}
	if err := s.Delete("refresh_token"); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete("refresh_token"); err != nil {
		t.Fatal("delete must be idempotent")
	}
	if _, ok := s.Get("refresh_token"); ok {
		t.Fatal("value survived delete")
	}
}
