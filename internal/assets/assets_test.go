package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	name string
	data []byte
}

// writeArchive creates a BSA archive file and returns its path.
func writeArchive(t *testing.T, filename string, records []record) string {
	t.Helper()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(len(records)))
	for _, r := range records {
		buf.Write(r.data)
	}
	for _, r := range records {
		var name [12]byte
		copy(name[:], r.name)
		buf.Write(name[:])
		binary.Write(&buf, binary.LittleEndian, uint32(len(r.data)))
	}

	path := filepath.Join(t.TempDir(), filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// buildIMG encodes a raw 4x2 IMG file filled with one palette index.
func buildIMG(fill uint8) []byte {
	var buf bytes.Buffer
	for _, v := range []uint16{0, 0, 4, 2, 0, 8} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	buf.Write(bytes.Repeat([]byte{fill}, 8))
	return buf.Bytes()
}

// buildDFA encodes a raw 2x2 DFA file with the given frame fills.
func buildDFA(fills ...uint8) []byte {
	var buf bytes.Buffer
	for _, v := range []uint16{uint16(len(fills)), 2, 2, 0} {
		binary.Write(&buf, binary.LittleEndian, v)
	}
	for _, fill := range fills {
		binary.Write(&buf, binary.LittleEndian, uint16(4))
		buf.Write(bytes.Repeat([]byte{fill}, 4))
	}
	return buf.Bytes()
}

// buildCOL encodes a palette whose index i maps to RGB (i, i, i).
func buildCOL() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(776))
	binary.Write(&buf, binary.LittleEndian, uint32(0xB123))
	for i := 0; i < 256; i++ {
		buf.Write([]byte{uint8(i), uint8(i), uint8(i)})
	}
	return buf.Bytes()
}

func newTestManager(t *testing.T, records []record) *Manager {
	t.Helper()
	m := NewManager()
	t.Cleanup(m.Close)
	if err := m.AddArchive(writeArchive(t, "test.bsa", records)); err != nil {
		t.Fatalf("AddArchive: %v", err)
	}
	return m
}

func TestLoadAndCache(t *testing.T) {
	m := newTestManager(t, []record{{"TEMP01.IMG", buildIMG(9)}})

	data, err := m.Load("TEMP01.IMG")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data) != 20 {
		t.Errorf("Load returned %d bytes, want 20", len(data))
	}

	if _, err := m.Load("TEMP01.IMG"); err != nil {
		t.Fatalf("second Load: %v", err)
	}
	hits, _ := m.cache.Stats()
	if hits != 1 {
		t.Errorf("cache hits = %d, want 1", hits)
	}
}

func TestLoadMissing(t *testing.T) {
	m := newTestManager(t, []record{{"TEMP01.IMG", buildIMG(9)}})

	if _, err := m.Load("NOPE.IMG"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load missing = %v, want ErrNotFound", err)
	}
}

func TestArchivePriority(t *testing.T) {
	m := NewManager()
	t.Cleanup(m.Close)

	if err := m.AddArchive(writeArchive(t, "base.bsa", []record{{"TEMP01.IMG", buildIMG(1)}})); err != nil {
		t.Fatal(err)
	}
	if err := m.AddArchive(writeArchive(t, "patch.bsa", []record{{"TEMP01.IMG", buildIMG(2)}})); err != nil {
		t.Fatal(err)
	}

	img, err := m.Image("TEMP01.IMG")
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	// Last archive added wins.
	if img.Pixels[0] != 2 {
		t.Errorf("pixel = %d, want 2 from the later archive", img.Pixels[0])
	}
}

func TestImageSet(t *testing.T) {
	m := newTestManager(t, []record{{"VOLC.DFA", buildDFA(3, 4, 5)}})

	frames, err := m.ImageSet("VOLC.DFA")
	if err != nil {
		t.Fatalf("ImageSet: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("frames = %d, want 3", len(frames))
	}
	for i, want := range []uint8{3, 4, 5} {
		if frames[i].Pixels[0] != want {
			t.Errorf("frame %d pixel = %d, want %d", i, frames[i].Pixels[0], want)
		}
	}
}

func TestPaletteColors(t *testing.T) {
	m := newTestManager(t, []record{{"PAL.COL", buildCOL()}})

	colors, err := m.PaletteColors("PAL.COL")
	if err != nil {
		t.Fatalf("PaletteColors: %v", err)
	}
	if got := colors.ColorARGB(64); got != 0xFF404040 {
		t.Errorf("ColorARGB(64) = %#x, want 0xFF404040", got)
	}
	if got := colors.ColorARGB(0); got != 0x00000000 {
		t.Errorf("ColorARGB(0) = %#x, want transparent", got)
	}
	if got := colors.ColorARGB(999); got != 0x00000000 {
		t.Errorf("ColorARGB(999) = %#x, want index 0 fallback", got)
	}
}

func TestPlaceholderDeterminism(t *testing.T) {
	p := NewPlaceholder()

	a, err := p.LoadImage("TEMP01.IMG")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.LoadImage("TEMP01.IMG")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Pixels, b.Pixels) {
		t.Error("placeholder image differs between calls for the same name")
	}

	other, _ := p.LoadImage("CLOUD05.IMG")
	if a.Pixels[0] == other.Pixels[0] {
		t.Error("placeholder images for different names share a palette index")
	}
}

func TestPlaceholderImageSet(t *testing.T) {
	p := NewPlaceholder()

	frames, err := p.LoadImageSet("MOON1.DFA")
	if err != nil {
		t.Fatal(err)
	}
	// Every moon phase must resolve to a frame.
	if len(frames) != 32 {
		t.Fatalf("frames = %d, want 32", len(frames))
	}
	for i, f := range frames {
		if f.Pixels[0] == 0 {
			t.Errorf("frame %d uses transparent index 0", i)
		}
	}
}

func TestPlaceholderPaletteOpaque(t *testing.T) {
	var pal PlaceholderPalette
	for i := 1; i < 256; i++ {
		if pal.ColorARGB(i)>>24 != 0xFF {
			t.Fatalf("index %d is not opaque", i)
		}
	}
	if pal.ColorARGB(0) != 0 {
		t.Error("index 0 should be transparent")
	}
}
