package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSaveLoadClearRoundTrip(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	sess, err := s.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if sess.AccessToken != "" {
		t.Fatalf("token = %q, want empty before any save", sess.AccessToken)
	}

	if err := s.Save("tok-abc"); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, err = s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.AccessToken != "tok-abc" {
		t.Fatalf("token = %q", sess.AccessToken)
	}
	if sess.SavedAt.IsZero() {
		t.Fatal("saved-at not recorded")
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sess, err = s.Load()
	if err != nil {
		t.Fatalf("load after clear: %v", err)
	}
	if sess.AccessToken != "" {
		t.Fatal("token survived clear")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear without a session: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestCorruptedFileTreatedAsMissing(t *testing.T) {
	dir := t.TempDir()
	s := Store{Dir: dir}
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sess, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sess.AccessToken != "" {
		t.Fatal("corrupted file yielded a token")
	}
}

func TestSessionFileIsUserOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	dir := t.TempDir()
	s := Store{Dir: dir}
	if err := s.Save("tok"); err != nil {
		t.Fatalf("save: %v", err)
	}
	st, err := os.Stat(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := st.Mode().Perm(); perm != 0o600 {
		t.Fatalf("perm = %o, the file holds a credential", perm)
	}
}

func TestEmptyDirStore(t *testing.T) {
	s := Store{}
	if _, err := s.Load(); err != nil {
		t.Fatalf("load with empty dir: %v", err)
	}
	if err := s.Save("tok"); err == nil {
		t.Fatal("save with empty dir must fail")
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear with empty dir: %v", err)
	}
}
