package dataset

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/abertrand/dsadd/internal/ndarray"
)

// ImageCodec decodes PNG images into arrays and encodes arrays back to
// PNG. Grayscale images become rank-2 arrays with axes Y, X; everything
// else becomes a rank-3 array with axes Y, X, Channel and three RGB
// channels. Sample values are in [0, 255].
type ImageCodec struct{}

// Name returns the codec identifier.
func (*ImageCodec) Name() string { return "png" }

// Extensions returns the handled file extensions.
func (*ImageCodec) Extensions() []string { return []string{".png"} }

// imageAxes2D labels a grayscale image array.
var imageAxes2D = []ndarray.Axis{ndarray.AxisY, ndarray.AxisX}

// imageAxes3D labels a color image array.
var imageAxes3D = []ndarray.Axis{ndarray.AxisY, ndarray.AxisX, ndarray.AxisChannel}

// Decode reads one image from r. The format is sniffed from the stream, so
// a mislabeled extension still decodes.
func (*ImageCodec) Decode(r io.Reader) (*ndarray.Array[float64], error) {
	return decodeImage(r)
}

// decodeImage is the shared image-to-array conversion behind the PNG and
// JPEG codecs.
func decodeImage(r io.Reader) (*ndarray.Array[float64], error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	height, width := bounds.Dy(), bounds.Dx()

	if gray, ok := img.(*image.Gray); ok {
		arr, err := ndarray.New[float64](ndarray.Shape{height, width}, imageAxes2D)
		if err != nil {
			return nil, err
		}
		data := arr.Data()
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				data[y*width+x] = float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return arr, nil
	}

	arr, err := ndarray.New[float64](ndarray.Shape{height, width, 3}, imageAxes3D)
	if err != nil {
		return nil, err
	}
	data := arr.Data()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			base := (y*width + x) * 3
			data[base] = float64(r16 >> 8)
			data[base+1] = float64(g16 >> 8)
			data[base+2] = float64(b16 >> 8)
		}
	}
	return arr, nil
}

// Encode writes the array as a PNG image: rank-2 arrays as 8-bit grayscale,
// rank-3 arrays with a 3-extent trailing dimension as RGB. Samples are
// clamped to [0, 255].
func (*ImageCodec) Encode(w io.Writer, v ndarray.View) error {
	switch {
	case v.Rank() == 2:
		height, width := v.Extent(0), v.Extent(1)
		img := image.NewGray(image.Rect(0, 0, width, height))
		pos := make([]int, 2)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pos[0], pos[1] = y, x
				img.SetGray(x, y, color.Gray{Y: clampToByte(v.RealAt(pos))})
			}
		}
		return png.Encode(w, img)

	case v.Rank() == 3 && v.Extent(2) == 3:
		height, width := v.Extent(0), v.Extent(1)
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		pos := make([]int, 3)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pos[0], pos[1] = y, x
				pos[2] = 0
				r := clampToByte(v.RealAt(pos))
				pos[2] = 1
				g := clampToByte(v.RealAt(pos))
				pos[2] = 2
				b := clampToByte(v.RealAt(pos))
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
		return png.Encode(w, img)

	default:
		return fmt.Errorf("cannot encode rank-%d array as an image", v.Rank())
	}
}

// JPEGCodec decodes JPEG images into arrays and encodes arrays back to
// JPEG. Geometry rules match ImageCodec.
type JPEGCodec struct {
	// Quality is the JPEG encode quality, 1..100. Zero selects the
	// encoder default.
	Quality int
}

// Name returns the codec identifier.
func (*JPEGCodec) Name() string { return "jpeg" }

// Extensions returns the handled file extensions.
func (*JPEGCodec) Extensions() []string { return []string{".jpg", ".jpeg"} }

// Decode reads one image from r.
func (*JPEGCodec) Decode(r io.Reader) (*ndarray.Array[float64], error) {
	return decodeImage(r)
}

// Encode writes the array as a JPEG image: rank-2 arrays as grayscale RGB,
// rank-3 arrays with a 3-extent trailing dimension as RGB. Samples are
// clamped to [0, 255].
func (c *JPEGCodec) Encode(w io.Writer, v ndarray.View) error {
	if v.Rank() != 2 && !(v.Rank() == 3 && v.Extent(2) == 3) {
		return fmt.Errorf("cannot encode rank-%d array as an image", v.Rank())
	}
	quality := c.Quality
	if quality == 0 {
		quality = jpeg.DefaultQuality
	}
	height, width := v.Extent(0), v.Extent(1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	pos := make([]int, v.Rank())
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pos[0], pos[1] = y, x
			var r, g, b uint8
			if v.Rank() == 2 {
				gray := clampToByte(v.RealAt(pos))
				r, g, b = gray, gray, gray
			} else {
				pos[2] = 0
				r = clampToByte(v.RealAt(pos))
				pos[2] = 1
				g = clampToByte(v.RealAt(pos))
				pos[2] = 2
				b = clampToByte(v.RealAt(pos))
			}
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}

// clampToByte rounds a sample to the nearest integer and clamps it to the
// 8-bit range.
func clampToByte(v float64) uint8 {
	rounded := math.Round(v)
	if rounded <= 0 {
		return 0
	}
	if rounded >= 255 {
		return 255
	}
	return uint8(rounded)
}
