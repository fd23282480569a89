//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package csvfile

import (
	"os"

	"golang.org/x/sys/unix"
)

func lockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX)
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

func dirWritable(dir string) error {
	return unix.Access(dir, unix.W_OK)
}
