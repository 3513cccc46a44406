package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you/assetsvc/domain"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "/uploads", 1024)
	require.NoError(t, err)

	stored, err := store.Save(context.Background(), "Photo.PNG", strings.NewReader("pixels"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.FileURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(stored.Filename, ".png"))
	assert.Equal(t, "/uploads/"+stored.Filename, stored.FileURL)
	assert.Equal(t, "Photo.PNG", stored.OriginalName)

	data, err := os.ReadFile(filepath.Join(dir, stored.Filename))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestLocalStorage_SaveRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     []byte
		wantErr  error
	}{
		{name: "executable", filename: "setup.exe", body: []byte("MZ"), wantErr: domain.ErrBlockedFileType},
		{name: "shell script upper case", filename: "run.SH", body: []byte("#!"), wantErr: domain.ErrBlockedFileType},
		{name: "no name", filename: "", body: []byte("x"), wantErr: domain.ErrNoFile},
		{name: "too large", filename: "big.bin", body: bytes.Repeat([]byte("a"), 17), wantErr: domain.ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := NewLocalStorage(dir, "/uploads/", 16)
			require.NoError(t, err)

			_, err = store.Save(context.Background(), tt.filename, bytes.NewReader(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "rejected uploads must not leave files behind")
		})
	}
}

func TestLocalStorage_ExactLimit(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/uploads/", 4)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "four.txt", strings.NewReader("four"))
	assert.NoError(t, err)
}

func TestIsBlocked(t *testing.T) {
	for _, name := range []string{"a.exe", "a.bat", "a.cmd", "a.sh", "a.com", "a.pif", "a.scr", "A.EXE"} {
		assert.True(t, IsBlocked(name), name)
	}
	for _, name := range []string{"a.png", "a.pdf", "exe", "a.exe.txt"} {
		assert.False(t, IsBlocked(name), name)
	}
}
