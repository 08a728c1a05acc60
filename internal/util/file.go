package util

import "os"

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
