package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"productconsole/utils"
)

// StoredBlob describes a blob written by BlobStore.Save.
type StoredBlob struct {
	StoredName  string
	StoragePath string // relative, slash-separated
	ContentType string
	Size        int64
	Checksum    string
}

// BlobStore keeps uploaded file contents on local disk.
type BlobStore struct {
	baseDir string
	now     func() time.Time
}

// NewBlobStore creates the base directory if needed.
func NewBlobStore(baseDir string) (*BlobStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to prepare storage directory: %w", err)
	}
	return &BlobStore{baseDir: baseDir, now: time.Now}, nil
}

// Save writes content under a generated name. declaredType is used when set and specific;
// otherwise the type is sniffed from the first bytes, then guessed from the extension.
func (b *BlobStore) Save(originalName, declaredType string, content io.Reader) (StoredBlob, error) {
	fileID, err := utils.GenerateID("file")
	if err != nil {
		return StoredBlob{}, fmt.Errorf("failed to generate file ID: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := strings.ToLower(fileID) + ext
	relPath := filepath.Join(b.now().Format("2006/01"), storedName)
	absPath := filepath.Join(b.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return StoredBlob{}, fmt.Errorf("failed to create storage path: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return StoredBlob{}, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]

	contentType := declaredType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ""
		if n > 0 {
			if sniffed := http.DetectContentType(head); sniffed != "application/octet-stream" {
				contentType = sniffed
			}
		}
		if contentType == "" && ext != "" {
			contentType = mime.TypeByExtension(ext)
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	dst, err := os.Create(absPath)
	if err != nil {
		return StoredBlob{}, fmt.Errorf("failed to store file: %w", err)
	}

	hash := sha256.New()
	size, err := io.Copy(io.MultiWriter(dst, hash), io.MultiReader(bytes.NewReader(head), content))
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(absPath)
		return StoredBlob{}, fmt.Errorf("failed to save file: %w", err)
	}

	return StoredBlob{
		StoredName:  storedName,
		StoragePath: filepath.ToSlash(relPath),
		ContentType: contentType,
		Size:        size,
		Checksum:    hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

// Open opens a stored blob for reading.
func (b *BlobStore) Open(storagePath string) (*os.File, error) {
	return os.Open(b.path(storagePath))
}

// Remove deletes a stored blob. Missing blobs are not an error.
func (b *BlobStore) Remove(storagePath string) error {
	err := os.Remove(b.path(storagePath))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Walk calls fn with the relative path of every stored blob and its modification time.
func (b *BlobStore) Walk(fn func(storagePath string, modTime time.Time) error) error {
	return filepath.WalkDir(b.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(b.baseDir, path)
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), info.ModTime())
	})
}

func (b *BlobStore) path(storagePath string) string {
	return filepath.Join(b.baseDir, filepath.FromSlash(filepath.Clean("/"+storagePath)))
}
