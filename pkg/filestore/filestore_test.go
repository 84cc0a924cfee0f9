package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-storevision-be/internal/entity"
)

func TestLoadSeedsEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	store := New(filepath.Join(dir, "data"))

	doc, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Empty(t, doc.GeneratedImages)
	assert.Empty(t, doc.VisionAnalyses)
	assert.Empty(t, doc.ChatSessions)
	assert.Empty(t, doc.SustainabilityReports)
	assert.Empty(t, doc.DashboardSnapshots)

	// First load creates the file on disk
	_, err = os.Stat(filepath.Join(dir, "data", "store.json"))
	assert.NoError(t, err)
}

func TestLoadMigratesMissingCollections(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	// An older document with only two collection keys
	legacy := `{"version":1,"generatedImages":[],"visionAnalyses":[{"id":"vision_1","cameraName":"Entrada","imageFile":null,"task":"count","result":{"objects":[],"summary":"","charts":[]},"timestamp":"2024-01-01T00:00:00Z"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "store.json"), []byte(legacy), 0o644))

	store := New(dir)
	doc, err := store.Load()
	require.NoError(t, err)

	assert.Len(t, doc.VisionAnalyses, 1)
	assert.NotNil(t, doc.ChatSessions)
	assert.Empty(t, doc.ChatSessions)
	assert.NotNil(t, doc.SustainabilityReports)
	assert.NotNil(t, doc.DashboardSnapshots)

	// The migration is in-memory only: the stored file keeps its shape
	// until the next mutation persists the full document.
	raw, err := os.ReadFile(filepath.Join(dir, "store.json"))
	require.NoError(t, err)
	var onDisk map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	assert.NotContains(t, onDisk, "chatSessions")
}

func TestMutatePersistsAndPrepends(t *testing.T) {
	store := New(t.TempDir())

	for _, id := range []string{"img_a", "img_b"} {
		id := id
		err := store.Mutate(func(doc *Document) error {
			doc.GeneratedImages = append([]entity.GeneratedImage{{Id: id, ImageFile: id + ".png"}}, doc.GeneratedImages...)
			return nil
		})
		require.NoError(t, err)
	}

	doc, err := store.Load()
	require.NoError(t, err)
	require.Len(t, doc.GeneratedImages, 2)
	assert.Equal(t, "img_b", doc.GeneratedImages[0].Id, "newest entry first")
	assert.Equal(t, "img_a", doc.GeneratedImages[1].Id)
}

func TestMutateErrorLeavesFileUntouched(t *testing.T) {
	store := New(t.TempDir())

	err := store.Mutate(func(doc *Document) error {
		doc.ChatSessions = append(doc.ChatSessions, entity.ChatSession{Id: "chat_1"})
		return nil
	})
	require.NoError(t, err)

	err = store.Mutate(func(doc *Document) error {
		doc.ChatSessions = nil
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, doc.ChatSessions, 1)
}

func TestMutateSerializesConcurrentWriters(t *testing.T) {
	store := New(t.TempDir())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Mutate(func(doc *Document) error {
				doc.GeneratedImages = append([]entity.GeneratedImage{{Id: entity.NewId(entity.IdPrefixImage)}}, doc.GeneratedImages...)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, doc.GeneratedImages, 20, "no update may be lost")
}

func TestImageLifecycle(t *testing.T) {
	store := New(t.TempDir())
	payload := []byte{0x89, 'P', 'N', 'G'}

	name, err := store.SaveImage("img", payload, ".png")
	require.NoError(t, err)
	assert.Regexp(t, `^img_\d+_[0-9a-f]{8}\.png$`, name)

	got, err := store.ReadImage(name)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	require.NoError(t, store.DeleteImage(name))

	_, err = store.ReadImage(name)
	assert.ErrorIs(t, err, ErrImageNotFound)

	// Deleting again is not an error
	assert.NoError(t, store.DeleteImage(name))
}

func TestReadImageUnknownName(t *testing.T) {
	store := New(t.TempDir())

	_, err := store.ReadImage("nonexistent.png")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestImageFilenameIsOpaqueKey(t *testing.T) {
	store := New(t.TempDir())

	for _, name := range []string{
		"",
		"../store.json",
		"..",
		"a/b.png",
		`a\b.png`,
		"/etc/passwd",
		"nested/../../escape.png",
	} {
		_, err := store.ReadImage(name)
		assert.ErrorIs(t, err, ErrUnsafeFilename, "name %q", name)

		err = store.DeleteImage(name)
		assert.ErrorIs(t, err, ErrUnsafeFilename, "name %q", name)
	}
}
