package features

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	npyMagic     = "\x93NUMPY"
	npyAlignment = 64
)

// ErrNPYFormat is returned when reading a file that is not a
// little-endian float32 C-order .npy version 1.0 array.
var ErrNPYFormat = errors.New("features: unsupported npy format")

// NPYWriter streams a float32 C-order array to a .npy file row by row.
// The shape is fixed up front; the first dimension counts rows.
type NPYWriter struct {
	w       *bufio.Writer
	shape   []int
	rowSize int
	written int
	buf     []byte
}

// NewNPYWriter writes the .npy header for shape and returns a writer for
// its shape[0] rows.
func NewNPYWriter(w io.Writer, shape ...int) (*NPYWriter, error) {
	if len(shape) == 0 {
		return nil, errors.New("features: npy shape must have at least one dimension")
	}

	rowSize := 1

	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("features: negative npy dimension in %v", shape)
		}
	}

	for _, d := range shape[1:] {
		rowSize *= d
	}

	n := &NPYWriter{
		w:       bufio.NewWriter(w),
		shape:   append([]int(nil), shape...),
		rowSize: rowSize,
		buf:     make([]byte, 4*rowSize),
	}

	_, err := n.w.Write(npyHeader(shape))
	if err != nil {
		return nil, fmt.Errorf("features: write npy header: %w", err)
	}

	return n, nil
}

func npyHeader(shape []int) []byte {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}

	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}

	dict := fmt.Sprintf("{'descr': '<f4', 'fortran_order': False, 'shape': (%s), }", shapeStr)

	// magic(6) + version(2) + header length(2) + dict + padding + '\n'
	total := 10 + len(dict) + 1
	pad := (npyAlignment - total%npyAlignment) % npyAlignment

	var b bytes.Buffer

	b.WriteString(npyMagic)
	b.Write([]byte{1, 0})
	_ = binary.Write(&b, binary.LittleEndian, uint16(len(dict)+pad+1))
	b.WriteString(dict)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteByte('\n')

	return b.Bytes()
}

// Shape returns the array shape.
func (n *NPYWriter) Shape() []int {
	return append([]int(nil), n.shape...)
}

// Written returns the number of rows written so far.
func (n *NPYWriter) Written() int {
	return n.written
}

// WriteRow appends one row of product(shape[1:]) values, converted to
// float32.
func (n *NPYWriter) WriteRow(row []float64) error {
	if n.written >= n.shape[0] {
		return fmt.Errorf("features: npy already holds %d rows", n.shape[0])
	}

	if len(row) != n.rowSize {
		return fmt.Errorf("features: npy row has %d values, want %d", len(row), n.rowSize)
	}

	for i, v := range row {
		binary.LittleEndian.PutUint32(n.buf[4*i:], math.Float32bits(float32(v)))
	}

	_, err := n.w.Write(n.buf)
	if err != nil {
		return fmt.Errorf("features: write npy row %d: %w", n.written, err)
	}

	n.written++

	return nil
}

// WriteSpectrogram appends s as one row. s must match shape[1:] as
// [n_mels, frames].
func (n *NPYWriter) WriteSpectrogram(s Spectrogram) error {
	if len(n.shape) == 3 && (n.shape[1] != s.NMels || n.shape[2] != s.Frames) {
		return fmt.Errorf("features: spectrogram is %dx%d, npy rows are %dx%d",
			s.NMels, s.Frames, n.shape[1], n.shape[2])
	}

	return n.WriteRow(s.Data)
}

// Close flushes buffered data. It reports an error if fewer rows than
// declared were written; the caller still owns the underlying writer.
func (n *NPYWriter) Close() error {
	err := n.w.Flush()
	if err != nil {
		return fmt.Errorf("features: flush npy: %w", err)
	}

	if n.written != n.shape[0] {
		return fmt.Errorf("features: npy declared %d rows, wrote %d", n.shape[0], n.written)
	}

	return nil
}

var npyShapeRE = regexp.MustCompile(`'shape':\s*\(([^)]*)\)`)

// ReadNPY reads a float32 little-endian C-order .npy array.
func ReadNPY(r io.Reader) ([]int, []float32, error) {
	pre := make([]byte, 10)

	_, err := io.ReadFull(r, pre)
	if err != nil {
		return nil, nil, fmt.Errorf("features: read npy preamble: %w", err)
	}

	if string(pre[:6]) != npyMagic || pre[6] != 1 {
		return nil, nil, fmt.Errorf("%w: bad magic or version", ErrNPYFormat)
	}

	header := make([]byte, binary.LittleEndian.Uint16(pre[8:]))

	_, err = io.ReadFull(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("features: read npy header: %w", err)
	}

	h := string(header)
	if !strings.Contains(h, "'descr': '<f4'") || !strings.Contains(h, "'fortran_order': False") {
		return nil, nil, fmt.Errorf("%w: %s", ErrNPYFormat, strings.TrimSpace(h))
	}

	m := npyShapeRE.FindStringSubmatch(h)
	if m == nil {
		return nil, nil, fmt.Errorf("%w: missing shape", ErrNPYFormat)
	}

	var shape []int

	count := 1

	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: shape %q", ErrNPYFormat, m[1])
		}

		shape = append(shape, d)
		count *= d
	}

	data := make([]float32, count)

	err = binary.Read(r, binary.LittleEndian, data)
	if err != nil {
		return nil, nil, fmt.Errorf("features: read npy data: %w", err)
	}

	return shape, data, nil
}
