//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package csvfile

import "os"

// Advisory locking is only wired for BSD-style flock platforms; elsewhere only the in-process mutex applies.
func lockFile(*os.File) error   { return nil }
func unlockFile(*os.File) error { return nil }
func dirWritable(string) error  { return nil }
