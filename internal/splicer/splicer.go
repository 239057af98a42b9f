package splicer

import (
	"errors"
	"fmt"
	"github.com/cirruslabs/splicewrite/internal/zerocopy"
	"io"
	"os"
	"syscall"
)

const (
	// DefaultLength is the maximum number of bytes moved by a single Transfer
	DefaultLength = 1000

	FileMode os.FileMode = 0644
)

var (
	ErrUsage    = errors.New("missing destination path")
	ErrOpen     = errors.New("failed to open destination file")
	ErrTransfer = errors.New("failed to splice standard input into destination file")
)

// Open creates the destination file or truncates it if it already exists.
func Open(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FileMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}

	return file, nil
}

// Transfer moves at most length bytes from src to dst in a single shot.
//
// Fewer bytes than requested (including zero on end of input) is not an error
// and no attempt is made to transfer the remainder. When the kernel primitive
// is not available, the bytes are read into a buffer once and written out.
func Transfer(dst *os.File, src *os.File, length int) (int, error) {
	if length < 0 {
		return 0, fmt.Errorf("%w: negative length %d", ErrTransfer, length)
	}

	// Fd() puts both descriptors into blocking mode,
	// which is what splice(2) without flags expects
	dstFd := int(dst.Fd())
	srcFd := int(src.Fd())

	for {
		n, err := zerocopy.Splice(dstFd, srcFd, length)
		if err == nil {
			return n, nil
		}

		// Interrupted before any data was moved, restart the same call
		if errors.Is(err, syscall.EINTR) {
			continue
		}

		if errors.Is(err, zerocopy.ErrNotSupported) {
			return bufferedTransfer(dst, src, length)
		}

		return 0, fmt.Errorf("%w: %v", ErrTransfer, err)
	}
}

func bufferedTransfer(dst *os.File, src *os.File, length int) (int, error) {
	buf := make([]byte, length)

	n, err := src.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w: %v", ErrTransfer, err)
	}

	if _, err := dst.Write(buf[:n]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTransfer, err)
	}

	return n, nil
}
