package ingest

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharsanguruparan/PaperProbe/internal/model"
	"github.com/dharsanguruparan/PaperProbe/internal/state"
)

func textUpload(name, content string, size int64) Upload {
	return Upload{
		Name: name,
		Size: size,
		Type: "text/plain",
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}

func TestValidate(t *testing.T) {
	prefs := model.DefaultPreferences()

	assert.Empty(t, Validate(Candidate{Name: "paper.pdf", Size: 2 << 20}, prefs))
	assert.Empty(t, Validate(Candidate{Name: "NOTES.TXT", Size: 10 << 20}, prefs), "limit is inclusive")

	v := Validate(Candidate{Name: "big.txt", Size: 15 << 20}, prefs)
	require.Len(t, v, 1)
	assert.Equal(t, "File size (15.00MB) exceeds maximum allowed size (10.00MB)", v[0])

	v = Validate(Candidate{Name: "tool.exe", Size: 100}, prefs)
	require.Len(t, v, 1)
	assert.Equal(t, "File format .exe is not supported. Allowed formats: .txt, .pdf, .docx, .rtf", v[0])

	v = Validate(Candidate{Name: "huge.exe", Size: 20 << 20}, prefs)
	assert.Len(t, v, 2)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".pdf", Extension("a.b.PDF"))
	assert.Equal(t, ".readme", Extension("README"))
	assert.Equal(t, ".", Extension("trailing."))
}

func TestFormatSize(t *testing.T) {
	cases := map[int64]string{
		0:         "0 Bytes",
		512:       "512 Bytes",
		1024:      "1 KB",
		1536:      "1.5 KB",
		10 << 20:  "10 MB",
		1 << 30:   "1 GB",
		3<<30 + 1: "3 GB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatSize(in), "bytes=%d", in)
	}
}

func TestExtractMetadata(t *testing.T) {
	content := strings.Repeat("word ", 401) + "\nlast line"
	md := ExtractMetadata([]byte(content), 2048, "text/plain")
	assert.Equal(t, 403, md.WordCount)
	assert.Equal(t, len(content), md.CharacterCount)
	assert.Equal(t, 2, md.LineCount)
	assert.Equal(t, 3, md.ReadingTime)
	assert.Equal(t, "2 KB", md.SizeFormatted)
	assert.Equal(t, "text/plain", md.Type)

	wide := ExtractMetadata([]byte("héllo 🙂"), 11, "text/plain")
	assert.Equal(t, 8, wide.CharacterCount, "é is one unit, the emoji is a surrogate pair")
	assert.Equal(t, 2, wide.WordCount)

	empty := ExtractMetadata(nil, 0, "")
	assert.Equal(t, 0, empty.WordCount)
	assert.Equal(t, 1, empty.LineCount)
	assert.Equal(t, 0, empty.ReadingTime)
}

func TestUploadMixedBatch(t *testing.T) {
	store := state.New(state.Initial())
	in := New(store)

	res := in.Upload(context.Background(), []Upload{
		textUpload("a.txt", "hello world", 2<<20),
		textUpload("b.txt", "", 15<<20),
	})
	in.Wait()

	require.Len(t, res.Accepted, 1)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "b.txt", res.Rejected[0].Name)

	snap := store.Snapshot()
	require.Len(t, snap.Files, 1)
	f := snap.Files[0]
	assert.Equal(t, "a.txt", f.Name)
	assert.Equal(t, model.StatusUploaded, f.Status)
	require.NotNil(t, f.Metadata)
	assert.Equal(t, 2, f.Metadata.WordCount)

	require.Len(t, snap.Notifications, 2)
	assert.Equal(t, model.NotifyError, snap.Notifications[0].Kind)
	assert.Equal(t, "File Upload Error", snap.Notifications[0].Title)
	assert.True(t, strings.HasPrefix(snap.Notifications[0].Message, "b.txt: File size (15.00MB)"))
	assert.Equal(t, model.NotifySuccess, snap.Notifications[1].Kind)
	assert.Equal(t, "Successfully uploaded 1 file(s)", snap.Notifications[1].Message)
}

func TestUploadAllRejected(t *testing.T) {
	store := state.New(state.Initial())
	in := New(store)

	res := in.Upload(context.Background(), []Upload{textUpload("virus.exe", "", 10)})
	in.Wait()

	assert.Empty(t, res.Accepted)
	snap := store.Snapshot()
	assert.Empty(t, snap.Files)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, "virus.exe: File format .exe is not supported. Allowed formats: .txt, .pdf, .docx, .rtf",
		snap.Notifications[0].Message)
}

func TestUploadAddsBatchBeforeMetadata(t *testing.T) {
	store := state.New(state.Initial())
	release := make(chan struct{})
	blocking := Upload{
		Name: "slow.txt",
		Size: 10,
		Open: func() (io.ReadCloser, error) {
			<-release
			return io.NopCloser(strings.NewReader("slow content")), nil
		},
	}
	in := New(store)
	res := in.Upload(context.Background(), []Upload{blocking, textUpload("fast.txt", "x", 1)})

	snap := store.Snapshot()
	require.Len(t, snap.Files, 2)
	assert.Equal(t, res.Accepted, []string{snap.Files[0].ID, snap.Files[1].ID})
	assert.Nil(t, snap.Files[0].Metadata)

	close(release)
	in.Wait()
	for _, f := range store.Snapshot().Files {
		assert.NotNil(t, f.Metadata, f.Name)
	}
}

func TestUploadSwallowsExtractionFailure(t *testing.T) {
	store := state.New(state.Initial())
	in := New(store)
	broken := Upload{
		Name: "broken.txt",
		Size: 10,
		Open: func() (io.ReadCloser, error) { return nil, errors.New("disk gone") },
	}

	res := in.Upload(context.Background(), []Upload{broken})
	in.Wait()

	require.Len(t, res.Accepted, 1)
	f, ok := store.Snapshot().File(res.Accepted[0])
	require.True(t, ok)
	assert.Nil(t, f.Metadata)
	assert.Equal(t, model.StatusUploaded, f.Status)
}

func TestUploadIDsUnique(t *testing.T) {
	store := state.New(state.Initial())
	in := New(store)

	res := in.Upload(context.Background(), []Upload{
		textUpload("same.txt", "", 1),
		textUpload("same.txt", "", 1),
	})
	in.Wait()
	require.Len(t, res.Accepted, 2)
	assert.NotEqual(t, res.Accepted[0], res.Accepted[1])
	assert.Len(t, store.Snapshot().Files, 2)
}

func TestUploadAutoAnalyzeHook(t *testing.T) {
	store := state.New(state.Initial())
	var (
		mu  sync.Mutex
		got []string
	)
	in := New(store, WithAutoAnalyze(func(ids []string) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ids...)
	}))

	res := in.Upload(context.Background(), []Upload{textUpload("a.txt", "", 1)})
	in.Wait()
	mu.Lock()
	assert.Equal(t, res.Accepted, got)
	got = nil
	mu.Unlock()

	off := false
	store.Dispatch(state.UpdatePreferences{Patch: model.PreferencesPatch{AutoAnalyze: &off}})
	in.Upload(context.Background(), []Upload{textUpload("b.txt", "", 1)})
	in.Wait()
	mu.Lock()
	assert.Empty(t, got)
	mu.Unlock()
}

func TestUploadHonoursPreferences(t *testing.T) {
	store := state.New(state.Initial())
	store.Dispatch(state.UpdatePreferences{Patch: model.PreferencesPatch{AllowedFormats: []string{".md"}}})
	in := New(store)

	res := in.Upload(context.Background(), []Upload{
		textUpload("notes.md", "", 1),
		textUpload("notes.txt", "", 1),
	})
	in.Wait()
	assert.Len(t, res.Accepted, 1)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, "notes.txt", res.Rejected[0].Name)
}

func TestRemoveAndClear(t *testing.T) {
	store := state.New(state.Initial())
	in := New(store)
	res := in.Upload(context.Background(), []Upload{
		textUpload("a.txt", "", 1),
		textUpload("b.txt", "", 1),
	})
	in.Wait()
	store.Dispatch(state.ClearNotifications{})

	in.Remove("missing")
	assert.Empty(t, store.Snapshot().Notifications)

	in.Remove(res.Accepted[0])
	snap := store.Snapshot()
	require.Len(t, snap.Files, 1)
	require.Len(t, snap.Notifications, 1)
	assert.Equal(t, "File Removed", snap.Notifications[0].Title)

	in.Clear()
	snap = store.Snapshot()
	assert.Empty(t, snap.Files)
	assert.Equal(t, "Files Cleared", snap.Notifications[len(snap.Notifications)-1].Title)
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paper.txt")
	require.NoError(t, os.WriteFile(path, []byte("one two three"), 0o600))

	up, err := FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "paper.txt", up.Name)
	assert.Equal(t, int64(13), up.Size)

	rc, err := up.Open()
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "one two three", string(data))

	_, err = FromPath(dir)
	assert.Error(t, err)
	_, err = FromPath(filepath.Join(dir, "nope.txt"))
	assert.Error(t, err)
}
