package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	writer.Close()

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("Failed to read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestNewStore_CreatesSubdirectories(t *testing.T) {
	base := t.TempDir()
	if _, err := NewStore(base); err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	for _, subdir := range []string{SubdirIPReports, SubdirOPReports, SubdirFollowUps} {
		info, err := os.Stat(filepath.Join(base, subdir))
		if err != nil || !info.IsDir() {
			t.Errorf("Expected directory %s, got err=%v", subdir, err)
		}
	}
}

func TestSave_WritesUnderGeneratedName(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	filename, err := store.Save(newFileHeader(t, "report.pdf", "%PDF"), SubdirIPReports)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !strings.HasSuffix(filename, "-report.pdf") {
		t.Errorf("Expected generated name to end with -report.pdf, got %q", filename)
	}
	data, err := os.ReadFile(store.Path(SubdirIPReports, filename))
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if string(data) != "%PDF" {
		t.Errorf("Unexpected saved content: %q", data)
	}
}

func TestSaveFiltered_RejectsBeforeWriting(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	_, err = store.SaveFiltered(newFileHeader(t, "payload.exe", "MZ"), SubdirFollowUps, AllowedFollowUpExts)
	if !errors.Is(err, ErrDisallowedType) {
		t.Fatalf("Expected ErrDisallowedType, got %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(base, SubdirFollowUps))
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected nothing written, found %d entries", len(entries))
	}
}

func TestSaveFiltered_ExtensionCheckIsCaseInsensitive(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	filename, err := store.SaveFiltered(newFileHeader(t, "SCAN.PDF", "%PDF"), SubdirFollowUps, AllowedFollowUpExts)
	if err != nil {
		t.Fatalf("SaveFiltered failed: %v", err)
	}
	if !store.Exists(SubdirFollowUps, filename) {
		t.Error("Expected saved file to exist")
	}
}

func TestPath_StripsDirectoryComponents(t *testing.T) {
	base := t.TempDir()
	store, err := NewStore(base)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got := store.Path(SubdirFollowUps, "../../etc/passwd")
	want := filepath.Join(base, SubdirFollowUps, "passwd")
	if got != want {
		t.Errorf("Expected traversal-stripped path %q, got %q", want, got)
	}
}

func TestRemove_DeletesSavedFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	filename, err := store.Save(newFileHeader(t, "visit.doc", "doc"), SubdirFollowUps)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Remove(SubdirFollowUps, filename); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.Exists(SubdirFollowUps, filename) {
		t.Error("Expected file to be gone after Remove")
	}
}
