package zerocopy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cirruslabs/splicewrite/internal/zerocopy"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSplicePipeToFile(t *testing.T) {
	pipeReader, pipeWriter, err := os.Pipe()
	require.NoError(t, err)
	defer pipeReader.Close()

	_, err = pipeWriter.Write([]byte("Hello, World!\n"))
	require.NoError(t, err)
	require.NoError(t, pipeWriter.Close())

	dstPath := filepath.Join(t.TempDir(), uuid.NewString())
	dst, err := os.Create(dstPath)
	require.NoError(t, err)

	n, err := zerocopy.Splice(int(dst.Fd()), int(pipeReader.Fd()), 1000)
	require.NoError(t, err)
	require.Equal(t, 14, n)
	require.NoError(t, dst.Close())

	contents, err := os.ReadFile(dstPath)
	require.NoError(t, err)
	require.Equal(t, "Hello, World!\n", string(contents))
}

func TestSpliceRespectsLength(t *testing.T) {
	pipeReader, pipeWriter, err := os.Pipe()
	require.NoError(t, err)
	defer pipeReader.Close()
	defer pipeWriter.Close()

	_, err = pipeWriter.Write(make([]byte, 4096))
	require.NoError(t, err)

	dst, err := os.Create(filepath.Join(t.TempDir(), uuid.NewString()))
	require.NoError(t, err)
	defer dst.Close()

	n, err := zerocopy.Splice(int(dst.Fd()), int(pipeReader.Fd()), 1000)
	require.NoError(t, err)
	require.Equal(t, 1000, n)
}

func TestSpliceWithoutPipeFails(t *testing.T) {
	tmpDir := t.TempDir()

	srcPath := filepath.Join(tmpDir, "src")
	require.NoError(t, os.WriteFile(srcPath, []byte("not a pipe"), 0600))

	src, err := os.Open(srcPath)
	require.NoError(t, err)
	defer src.Close()

	dst, err := os.Create(filepath.Join(tmpDir, "dst"))
	require.NoError(t, err)
	defer dst.Close()

	_, err = zerocopy.Splice(int(dst.Fd()), int(src.Fd()), 1000)
	require.ErrorIs(t, err, unix.EINVAL)
}
