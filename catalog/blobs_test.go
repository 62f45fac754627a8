package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productconsole/models"
)

func TestBlobStoreSaveSniffsAndHashes(t *testing.T) {
	blobs, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)
	blobs.now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }

	content := "%PDF-1.4 fake document body"
	blob, err := blobs.Save("Guide.PDF", "application/octet-stream", strings.NewReader(content))
	require.NoError(t, err)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), blob.Checksum)
	assert.Equal(t, int64(len(content)), blob.Size)
	assert.Equal(t, "application/pdf", blob.ContentType)
	assert.True(t, strings.HasPrefix(blob.StoragePath, "2024/07/"))
	assert.True(t, strings.HasSuffix(blob.StoredName, ".pdf"))

	f, err := blobs.Open(blob.StoragePath)
	require.NoError(t, err)
	defer f.Close()
	stored, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, content, string(stored))
}

func TestBlobStoreKeepsDeclaredType(t *testing.T) {
	blobs, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	blob, err := blobs.Save("rows.csv", "text/csv", strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, "text/csv", blob.ContentType)

	empty, err := blobs.Save("empty.bin", "", strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Size)
	assert.Equal(t, "application/octet-stream", empty.ContentType)
}

func TestBlobStoreRemoveConfinedToBaseDir(t *testing.T) {
	root := t.TempDir()
	outside := filepath.Join(root, "outside.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0644))

	blobs, err := NewBlobStore(filepath.Join(root, "files"))
	require.NoError(t, err)

	require.NoError(t, blobs.Remove("../outside.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestSweeperRemovesOnlyOldOrphans(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	blobs, err := NewBlobStore(t.TempDir())
	require.NoError(t, err)

	product, err := store.CreateProduct(ctx, sampleCreate("Geo API"))
	require.NoError(t, err)

	kept, err := blobs.Save("kept.txt", "text/plain", strings.NewReader("kept"))
	require.NoError(t, err)
	_, err = store.CreateFile(ctx, models.FileAsset{
		ProductID: rowID(t, product.ID), FileType: models.FileTypeSample, FileName: "kept.txt",
		StoredName: kept.StoredName, ContentType: kept.ContentType, StoragePath: kept.StoragePath,
	})
	require.NoError(t, err)

	orphan, err := blobs.Save("orphan.txt", "text/plain", strings.NewReader("orphan"))
	require.NoError(t, err)

	sweeper := NewSweeper(store, blobs, time.Minute)

	removed, err := sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed, "fresh orphans are within the grace period")

	sweeper.now = func() time.Time { return time.Now().Add(time.Hour) }
	removed, err = sweeper.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	_, err = blobs.Open(orphan.StoragePath)
	assert.True(t, os.IsNotExist(err))
	f, err := blobs.Open(kept.StoragePath)
	require.NoError(t, err)
	f.Close()
}
