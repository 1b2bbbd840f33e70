package imgio

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/pixelforge/imgarray/internal/array"
)

// craftArrayFile assembles a container with an arbitrary header so
// tests can exercise malformed inputs.
func craftArrayFile(t *testing.T, header string, payload []byte) string {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("ARRZ")
	var hlen [4]byte
	binary.LittleEndian.PutUint32(hlen[:], uint32(len(header)))
	buf.Write(hlen[:])
	buf.WriteString(header)

	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatalf("failed to initialize compressor: %v", err)
	}
	if _, err := enc.Write(payload); err != nil {
		t.Fatalf("failed to compress payload: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("failed to finalize payload: %v", err)
	}

	path := filepath.Join(t.TempDir(), "crafted.arr")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write crafted file: %v", err)
	}
	return path
}

func TestDumpLoadArray_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		kind   array.Kind
		shape  []int
		values []float64
	}{
		{"uint8 grayscale", array.Uint8, []int{2, 3}, []float64{0, 1, 2, 253, 254, 255}},
		{"uint16 grayscale", array.Uint16, []int{2, 2}, []float64{0, 256, 40000, 65535}},
		{"int32 with negatives", array.Int32, []int{2, 2}, []float64{-70000, -1, 0, 70000}},
		{"float64 color", array.Float64, []int{1, 2, 3}, []float64{0, 0.25, 0.5, 0.625, 0.75, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustArray(t, tt.kind, tt.shape, tt.values)
			path := filepath.Join(t.TempDir(), "test.arr")

			if err := DumpArray(path, a); err != nil {
				t.Fatalf("DumpArray failed: %v", err)
			}
			got, err := LoadArray(path)
			if err != nil {
				t.Fatalf("LoadArray failed: %v", err)
			}
			if !got.Equal(a) {
				t.Errorf("round trip: got kind %v shape %v %v, want %v", got.Kind, got.Shape, got.Data, a.Data)
			}
		})
	}
}

func TestLoadArray_BadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.arr")
	if err := os.WriteFile(path, []byte("XXXX\x00\x00\x00\x00"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadArray(path); err == nil {
		t.Error("LoadArray should reject files without the container magic")
	}
}

func TestLoadArray_Truncated(t *testing.T) {
	a := mustArray(t, array.Uint16, []int{2, 2}, []float64{1, 2, 3, 4})
	path := filepath.Join(t.TempDir(), "trunc.arr")
	if err := DumpArray(path, a); err != nil {
		t.Fatalf("DumpArray failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read dump: %v", err)
	}
	if err := os.WriteFile(path, raw[:len(raw)-4], 0o644); err != nil {
		t.Fatalf("failed to truncate dump: %v", err)
	}

	if _, err := LoadArray(path); err == nil {
		t.Error("LoadArray should fail on a truncated payload")
	}
}

func TestLoadArray_RejectsBadShapes(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"negative dimension", `{"kind":"uint8","shape":[-1,4]}`},
		{"negative dimension pair", `{"kind":"uint8","shape":[-2,-2]}`},
		{"element count overflow", `{"kind":"uint8","shape":[4611686018427387904,4611686018427387904]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := craftArrayFile(t, tt.header, []byte{1, 2, 3, 4})
			if _, err := LoadArray(path); err == nil {
				t.Error("LoadArray should reject the declared shape with an error")
			}
		})
	}
}

func TestLoadArray_RejectsMissingKind(t *testing.T) {
	path := craftArrayFile(t, `{"shape":[2,2]}`, []byte{1, 2, 3, 4})
	if _, err := LoadArray(path); err == nil {
		t.Error("LoadArray should reject a header without an element kind")
	}
}

func TestLoadArray_RejectsOversizedHeader(t *testing.T) {
	// A 12-byte file declaring a huge header must fail fast instead of
	// attempting the allocation.
	raw := append([]byte("ARRZ"), 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0)
	path := filepath.Join(t.TempDir(), "hugeheader.arr")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadArray(path); err == nil {
		t.Error("LoadArray should reject a header length beyond the container limit")
	}
}

func TestLoadArray_MissingFile(t *testing.T) {
	if _, err := LoadArray(filepath.Join(t.TempDir(), "missing.arr")); err == nil {
		t.Error("LoadArray should fail for a missing file")
	}
}
