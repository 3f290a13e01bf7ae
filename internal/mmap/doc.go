// Package mmap maps files read-only into memory.
//
// On unix systems the mapping uses mmap(2) through golang.org/x/sys/unix.
// Elsewhere the file is read into memory; callers see the same API.
package mmap
