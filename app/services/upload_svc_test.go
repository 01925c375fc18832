package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalUploaderSave(t *testing.T) {
	u := NewLocalUploader(t.TempDir())

	url, publicID, err := u.Save("products", "tee.png", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/products/") {
		t.Errorf("expected /uploads/products/ URL, got %s", url)
	}
	if !strings.HasPrefix(publicID, "products"+string(filepath.Separator)) && !strings.HasPrefix(publicID, "products/") {
		t.Errorf("expected publicID under products/, got %s", publicID)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("expected extension to survive, got %s", url)
	}

	data, err := os.ReadFile(filepath.Join(u.baseDir, publicID))
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if string(data) != "fake image bytes" {
		t.Errorf("unexpected file contents: %s", data)
	}
}

func TestLocalUploaderRejectsBadExtensions(t *testing.T) {
	u := NewLocalUploader(t.TempDir())

	for _, name := range []string{"shell.php", "doc.pdf", "noext"} {
		if _, _, err := u.Save("products", name, strings.NewReader("x")); err == nil {
			t.Errorf("expected %s to be rejected", name)
		}
	}
}

func TestLocalUploaderDelete(t *testing.T) {
	u := NewLocalUploader(t.TempDir())

	_, publicID, err := u.Save("verifications", "proof.jpg", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("failed to save upload: %v", err)
	}

	if err := u.Delete(publicID); err != nil {
		t.Fatalf("failed to delete upload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(u.baseDir, publicID)); !os.IsNotExist(err) {
		t.Error("expected file to be gone after delete")
	}

	if err := u.Delete(""); err != nil {
		t.Errorf("deleting an empty publicID should be a no-op, got %v", err)
	}
}
