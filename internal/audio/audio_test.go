package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	fserrors "github.com/jscyril/freesound_cli/pkg/errors"
)

// writeWAV writes a minimal mono 16-bit PCM WAV file with the given
// number of frames.
func writeWAV(t *testing.T, path string, frames int) {
	t.Helper()

	const sampleRate = 8000
	dataLen := frames * 2

	buf := &bytes.Buffer{}
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	binary.Write(buf, binary.LittleEndian, uint16(2))
	binary.Write(buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataLen))
	for i := 0; i < frames; i++ {
		binary.Write(buf, binary.LittleEndian, int16(i))
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("writing test wav: %v", err)
	}
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/previews/12345.mp3", true},
		{"/previews/12345.MP3", true},
		{"/previews/12345.ogg", true},
		{"/sounds/take1.wav", true},
		{"/sounds/take1.flac", true},
		{"/sounds/take1.aac", false},
		{"/sounds/readme.txt", false},
		{"/sounds/noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := IsSupported(tt.path)
			if result != tt.expected {
				t.Errorf("IsSupported(%s) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()

	if len(formats) == 0 {
		t.Error("SupportedFormats should return at least one format")
	}

	expected := map[string]bool{".mp3": true, ".ogg": true, ".wav": true, ".flac": true}
	for _, f := range formats {
		if !expected[f] {
			t.Errorf("Unexpected format: %s", f)
		}
	}
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	_, _, err = Decode(f, path)
	if !errors.Is(err, fserrors.ErrDecodeFailed) {
		t.Errorf("error = %v, want ErrDecodeFailed", err)
	}
}

func TestLoadBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, 1234)

	buffer, format, err := LoadBuffer(path)
	if err != nil {
		t.Fatalf("LoadBuffer returned error: %v", err)
	}
	if buffer.Len() != 1234 {
		t.Errorf("buffer.Len() = %d, want 1234", buffer.Len())
	}
	if format.SampleRate != 8000 {
		t.Errorf("SampleRate = %d, want 8000", format.SampleRate)
	}
}

func TestLoadBuffer_Failures(t *testing.T) {
	t.Run("zero frames", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.wav")
		writeWAV(t, path, 0)

		_, _, err := LoadBuffer(path)
		if !errors.Is(err, fserrors.ErrDecodeFailed) {
			t.Errorf("error = %v, want ErrDecodeFailed", err)
		}
	})

	t.Run("garbage bytes", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.mp3")
		if err := os.WriteFile(path, []byte("definitely not an mp3"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, _, err := LoadBuffer(path)
		if !errors.Is(err, fserrors.ErrDecodeFailed) {
			t.Errorf("error = %v, want ErrDecodeFailed", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := LoadBuffer(filepath.Join(t.TempDir(), "nope.wav"))
		if !errors.Is(err, fserrors.ErrDecodeFailed) {
			t.Errorf("error = %v, want ErrDecodeFailed", err)
		}
	})
}
