package dataset

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/abertrand/dsadd/internal/ndarray"
)

// rawMagic identifies a .nda stream.
var rawMagic = [4]byte{'N', 'D', 'A', '1'}

// maxRawHeaderBytes bounds the JSON header so a corrupt length field cannot
// trigger an unbounded allocation.
const maxRawHeaderBytes = 1 << 20

// maxRawElements bounds the element count a header may declare (32 GiB of
// float64 samples), so a corrupt shape cannot trigger an unbounded
// allocation either.
const maxRawElements = 1 << 32

// rawHeader is the JSON header preceding the sample payload.
type rawHeader struct {
	DType string   `json:"dtype"`
	Shape []int    `json:"shape"`
	Axes  []string `json:"axes,omitempty"`
}

// RawCodec reads and writes the native .nda dataset format: a 4-byte magic,
// a little-endian uint32 header length, a JSON header carrying dtype, shape
// and axis labels, then the row-major little-endian float64 payload.
type RawCodec struct{}

// Name returns the codec identifier.
func (*RawCodec) Name() string { return "raw" }

// Extensions returns the handled file extensions.
func (*RawCodec) Extensions() []string { return []string{".nda"} }

// Decode reads one .nda dataset from r.
func (*RawCodec) Decode(r io.Reader) (*ndarray.Array[float64], error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != rawMagic {
		return nil, fmt.Errorf("not a .nda stream (magic %q)", magic[:])
	}

	var headerLen uint32
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("reading header length: %w", err)
	}
	if headerLen == 0 || headerLen > maxRawHeaderBytes {
		return nil, fmt.Errorf("implausible header length %d", headerLen)
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	var header rawHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}
	if header.DType != "float64" {
		return nil, fmt.Errorf("unsupported dtype %q", header.DType)
	}

	shape := ndarray.Shape(header.Shape)
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape in header: %w", err)
	}
	if n := shape.NumElements(); n > maxRawElements {
		return nil, fmt.Errorf("implausible element count %d in header", n)
	}
	axes := make([]ndarray.Axis, len(header.Axes))
	for i, label := range header.Axes {
		axes[i] = ndarray.Axis(label)
	}
	arr, err := ndarray.New[float64](shape, axes)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 8)
	data := arr.Data()
	for i := range data {
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("reading sample %d of %d: %w", i, len(data), err)
		}
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload))
	}
	return arr, nil
}

// Encode writes the array to w in .nda format. Any View geometry can be
// represented; samples are written in row-major order.
func (*RawCodec) Encode(w io.Writer, v ndarray.View) error {
	rank := v.Rank()
	shape := make([]int, rank)
	axes := make([]string, rank)
	for d := 0; d < rank; d++ {
		shape[d] = v.Extent(d)
		axes[d] = string(v.AxisAt(d))
	}

	headerBytes, err := json.Marshal(rawHeader{DType: "float64", Shape: shape, Axes: axes})
	if err != nil {
		return err
	}
	if _, err := w.Write(rawMagic[:]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(headerBytes))); err != nil {
		return err
	}
	if _, err := w.Write(headerBytes); err != nil {
		return err
	}

	payload := make([]byte, 8)
	return forEachCoordinate(v, func(pos []int) error {
		binary.LittleEndian.PutUint64(payload, math.Float64bits(v.RealAt(pos)))
		_, err := w.Write(payload)
		return err
	})
}

// forEachCoordinate visits every coordinate tuple of v in row-major order.
// The pos slice is reused between calls.
func forEachCoordinate(v ndarray.View, fn func(pos []int) error) error {
	rank := v.Rank()
	total := 1
	shape := make([]int, rank)
	for d := 0; d < rank; d++ {
		shape[d] = v.Extent(d)
		total *= shape[d]
	}
	if total == 0 {
		return nil
	}

	pos := make([]int, rank)
	for i := 0; i < total; i++ {
		if err := fn(pos); err != nil {
			return err
		}
		for d := rank - 1; d >= 0; d-- {
			pos[d]++
			if pos[d] < shape[d] {
				break
			}
			pos[d] = 0
		}
	}
	return nil
}
