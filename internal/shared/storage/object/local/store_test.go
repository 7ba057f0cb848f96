package local

import (
	"context"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	store.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	key, err := store.Put(context.Background(), 1, "report_user_1.docx", "application/octet-stream", []byte("docx-bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "docx-bytes" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatalf("expected invalid storage key")
	}
}

func TestPutHonorsCanceledContext(t *testing.T) {
	store := New(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Put(ctx, 1, "a.pdf", "application/pdf", []byte("x")); err == nil {
		t.Fatalf("expected canceled context error")
	}
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	base := t.TempDir()
	store := New(base)
	if _, err := store.Put(context.Background(), 2, "report_user_2.pdf", "application/pdf", []byte("pdf")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var files []string
	_ = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files = append(files, filepath.Base(p))
		}
		return nil
	})
	if len(files) != 1 || !strings.HasSuffix(files[0], "_report_user_2.pdf") {
		t.Fatalf("expected a single archived file, got %v", files)
	}
}
