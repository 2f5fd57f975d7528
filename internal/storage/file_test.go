package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStorage_SaveLoadClear(t *testing.T) {
	s, err := NewFileStorage(t.TempDir(), "ecodeli")
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}

	if _, _, ok, _ := s.Load(); ok {
		t.Fatalf("expected empty storage before Save")
	}

	if err := s.Save("T1", []byte(`{"userType":"CLIENT"}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	token, user, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if token != "T1" || string(user) != `{"userType":"CLIENT"}` {
		t.Fatalf("unexpected entries: %q %q", token, user)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, _, ok, _ := s.Load(); ok {
		t.Fatalf("expected empty storage after Clear")
	}
	// clearing again must stay a no-op
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear: %v", err)
	}
}

func TestFileStorage_MissingUserEntryMeansNoSession(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStorage(dir, "admin")
	if err != nil {
		t.Fatalf("NewFileStorage: %v", err)
	}
	if err := s.Save("T1", []byte(`{}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "admin_user")); err != nil {
		t.Fatalf("remove user entry: %v", err)
	}

	if _, _, ok, err := s.Load(); ok || err != nil {
		t.Fatalf("token without user must not restore a session (ok=%v err=%v)", ok, err)
	}
}

func TestFileStorage_PrefixesAreIsolated(t *testing.T) {
	dir := t.TempDir()
	portal, _ := NewFileStorage(dir, "ecodeli")
	admin, _ := NewFileStorage(dir, "admin")

	if err := portal.Save("TP", []byte(`{"userType":"CLIENT"}`)); err != nil {
		t.Fatalf("Save portal: %v", err)
	}
	if err := admin.Save("TA", []byte(`{"userType":"ADMIN"}`)); err != nil {
		t.Fatalf("Save admin: %v", err)
	}

	if err := portal.Clear(); err != nil {
		t.Fatalf("Clear portal: %v", err)
	}
	token, _, ok, _ := admin.Load()
	if !ok || token != "TA" {
		t.Fatalf("admin session must survive portal logout, got ok=%v token=%q", ok, token)
	}
}
