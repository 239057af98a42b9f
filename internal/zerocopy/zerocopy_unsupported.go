//go:build !linux

package zerocopy

func Splice(dstFd int, srcFd int, length int) (int, error) {
	return 0, ErrNotSupported
}
