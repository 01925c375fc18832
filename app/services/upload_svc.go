package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Uploader abstracts the image store; the API stores whatever URL the
// uploader hands back, so a CDN-backed implementation can slot in.
type Uploader interface {
	Save(subdir, filename string, content io.Reader) (url string, publicID string, err error)
	Delete(publicID string) error
}

// LocalUploader writes uploads to local disk and serves them under
// /uploads.
type LocalUploader struct {
	baseDir string
}

func NewLocalUploader(baseDir string) *LocalUploader {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	return &LocalUploader{baseDir: baseDir}
}

func (u *LocalUploader) Save(subdir, filename string, content io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExts[ext] {
		return "", "", fmt.Errorf("file type %q not allowed", ext)
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	dir := filepath.Join(u.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	dst := filepath.Join(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		return "", "", fmt.Errorf("failed to write upload: %w", err)
	}

	publicID := filepath.Join(subdir, name)
	return "/uploads/" + filepath.ToSlash(publicID), publicID, nil
}

func (u *LocalUploader) Delete(publicID string) error {
	if publicID == "" {
		return nil
	}
	return os.Remove(filepath.Join(u.baseDir, publicID))
}
