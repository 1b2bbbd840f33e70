package imgio

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/pixelforge/imgarray/internal/array"
)

// Raw array container: magic, a little-endian uint32 header length, a
// JSON header, then the zstd-compressed element payload. Elements are
// serialized at their kind's native width, little-endian.
const arrayMagic = "ARRZ"

// maxHeaderLen bounds the declared header length; a kind name plus a
// shape never comes close, so anything larger is a corrupt or hostile
// file.
const maxHeaderLen = 4096

type arrayHeader struct {
	Kind  string `json:"kind"`
	Shape []int  `json:"shape"`
}

// DumpArray writes an array to path in the raw container format.
//
// The on-disk payload is exact for every kind: integers are stored at
// their native width and floats as 64-bit values, so LoadArray returns
// an equal array.
func DumpArray(path string, arr *array.Array) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create array file: %w", err)
	}
	defer f.Close()

	header, err := json.Marshal(arrayHeader{Kind: arr.Kind.String(), Shape: arr.Shape})
	if err != nil {
		return fmt.Errorf("failed to encode array header: %w", err)
	}
	if _, err := f.WriteString(arrayMagic); err != nil {
		return fmt.Errorf("failed to write array file: %w", err)
	}
	var hlen [4]byte
	binary.LittleEndian.PutUint32(hlen[:], uint32(len(header)))
	if _, err := f.Write(hlen[:]); err != nil {
		return fmt.Errorf("failed to write array file: %w", err)
	}
	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("failed to write array file: %w", err)
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to initialize compressor: %w", err)
	}
	if _, err := enc.Write(packElements(arr)); err != nil {
		enc.Close()
		return fmt.Errorf("failed to write array payload: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize array payload: %w", err)
	}
	return nil
}

// LoadArray reads an array previously written by DumpArray.
func LoadArray(path string) (*array.Array, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open array file: %w", err)
	}
	defer f.Close()

	head := make([]byte, len(arrayMagic)+4)
	if _, err := io.ReadFull(f, head); err != nil {
		return nil, fmt.Errorf("failed to read array file header: %w", err)
	}
	if string(head[:len(arrayMagic)]) != arrayMagic {
		return nil, fmt.Errorf("%q is not an array file", path)
	}
	hlen := binary.LittleEndian.Uint32(head[len(arrayMagic):])
	if hlen > maxHeaderLen {
		return nil, fmt.Errorf("array file header length %d exceeds limit %d", hlen, maxHeaderLen)
	}
	rawHeader := make([]byte, hlen)
	if _, err := io.ReadFull(f, rawHeader); err != nil {
		return nil, fmt.Errorf("failed to read array file header: %w", err)
	}
	var header arrayHeader
	if err := json.Unmarshal(rawHeader, &header); err != nil {
		return nil, fmt.Errorf("failed to decode array file header: %w", err)
	}
	kind, err := array.ParseKind(header.Kind)
	if err != nil {
		return nil, fmt.Errorf("array file header: %w", err)
	}
	if kind == array.Auto {
		return nil, fmt.Errorf("array file header does not name an element kind")
	}
	count, err := shapeCount(header.Shape)
	if err != nil {
		return nil, fmt.Errorf("array file header: %w", err)
	}

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize decompressor: %w", err)
	}
	defer dec.Close()

	// The payload is checked against the declared shape before any
	// shape-sized allocation happens; the file never dictates an
	// allocation larger than its own decompressed contents.
	payload, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to read array payload: %w", err)
	}
	if want := count * kind.ByteWidth(); len(payload) != want {
		return nil, fmt.Errorf("array payload holds %d bytes, shape %v of %s needs %d",
			len(payload), header.Shape, kind, want)
	}
	arr := array.New(kind, header.Shape...)
	unpackElements(arr, payload)
	return arr, nil
}

// shapeCount validates a declared shape and returns its element count.
// Dimensions must be non-negative and their product must fit in an int.
func shapeCount(shape []int) (int, error) {
	count := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension in shape %v", shape)
		}
		if d > 0 && count > math.MaxInt/d {
			return 0, fmt.Errorf("shape %v overflows element count", shape)
		}
		count *= d
	}
	return count, nil
}

// packElements serializes values at the kind's native width.
func packElements(arr *array.Array) []byte {
	width := arr.Kind.ByteWidth()
	out := make([]byte, arr.Len()*width)
	for i, v := range arr.Data {
		switch arr.Kind {
		case array.Uint8:
			out[i] = uint8(v)
		case array.Uint16:
			binary.LittleEndian.PutUint16(out[2*i:], uint16(v))
		case array.Int32:
			binary.LittleEndian.PutUint32(out[4*i:], uint32(int32(v)))
		default:
			binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
		}
	}
	return out
}

func unpackElements(arr *array.Array, payload []byte) {
	for i := range arr.Data {
		switch arr.Kind {
		case array.Uint8:
			arr.Data[i] = float64(payload[i])
		case array.Uint16:
			arr.Data[i] = float64(binary.LittleEndian.Uint16(payload[2*i:]))
		case array.Int32:
			arr.Data[i] = float64(int32(binary.LittleEndian.Uint32(payload[4*i:])))
		default:
			arr.Data[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
		}
	}
}
