// Package bsa provides reading functionality for the game's BSA archives.
//
// A BSA archive is flat: a uint16 record count, the concatenated record
// data, and a trailing directory of 16-byte entries (a zero-padded 12-byte
// name plus a uint32 size). Record offsets are implied by directory order.
package bsa

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Archive errors.
var (
	ErrNotFound       = errors.New("file not found in archive")
	ErrCorruptArchive = errors.New("corrupt BSA archive")
)

const (
	headerLen   = 2
	dirEntryLen = 16
	nameLen     = 12
)

// Archive represents an opened BSA archive.
type Archive struct {
	file    *os.File
	entries []Entry
	byName  map[string]int
}

// Entry represents a file entry in the archive.
type Entry struct {
	Name   string
	Size   uint32
	Offset int64
}

// Open opens a BSA archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	archive := &Archive{
		file:   file,
		byName: make(map[string]int),
	}

	if err := archive.readDirectory(); err != nil {
		file.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

func (a *Archive) readDirectory() error {
	info, err := a.file.Stat()
	if err != nil {
		return err
	}
	fileLen := info.Size()

	if fileLen < headerLen {
		return fmt.Errorf("%w: shorter than header", ErrCorruptArchive)
	}

	var count uint16
	if err := binary.Read(a.file, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("reading record count: %w", err)
	}

	dirOffset := fileLen - int64(count)*dirEntryLen
	if dirOffset < headerLen {
		return fmt.Errorf("%w: directory overlaps header", ErrCorruptArchive)
	}
	if _, err := a.file.Seek(dirOffset, io.SeekStart); err != nil {
		return err
	}

	dir := make([]byte, int(count)*dirEntryLen)
	if _, err := io.ReadFull(a.file, dir); err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}

	a.entries = make([]Entry, 0, count)
	offset := int64(headerLen)
	for i := 0; i < int(count); i++ {
		raw := dir[i*dirEntryLen : (i+1)*dirEntryLen]
		name := parseName(raw[:nameLen])
		size := binary.LittleEndian.Uint32(raw[nameLen:])

		entry := Entry{Name: name, Size: size, Offset: offset}
		a.byName[normalizeName(name)] = len(a.entries)
		a.entries = append(a.entries, entry)
		offset += int64(size)
	}

	if offset != dirOffset {
		return fmt.Errorf("%w: record data ends at %d, directory starts at %d",
			ErrCorruptArchive, offset, dirOffset)
	}

	return nil
}

// Count returns the number of records in the archive.
func (a *Archive) Count() int {
	return len(a.entries)
}

// List returns all record names in directory order.
func (a *Archive) List() []string {
	result := make([]string, len(a.entries))
	for i, e := range a.entries {
		result[i] = e.Name
	}
	return result
}

// Entries returns the directory in archive order.
func (a *Archive) Entries() []Entry {
	return append([]Entry(nil), a.entries...)
}

// Contains checks if a record exists. Lookup is case-insensitive.
func (a *Archive) Contains(name string) bool {
	_, ok := a.byName[normalizeName(name)]
	return ok
}

// Read reads a record from the archive.
func (a *Archive) Read(name string) ([]byte, error) {
	idx, ok := a.byName[normalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	entry := a.entries[idx]

	if _, err := a.file.Seek(entry.Offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking to %s: %w", name, err)
	}

	data := make([]byte, entry.Size)
	if _, err := io.ReadFull(a.file, data); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// parseName extracts a record name from a zero-padded 12-byte field.
func parseName(raw []byte) string {
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return string(raw[:end])
}

func normalizeName(name string) string {
	return strings.ToUpper(name)
}
