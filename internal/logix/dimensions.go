package logix

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimensions are the 1 to 3 fixed axis lengths of an array.
// The zero value has rank 0 and describes a scalar.
type Dimensions struct {
	axes [3]int
	rank int
}

// NewDimensions creates dimensions from 1 to 3 positive axis lengths.
func NewDimensions(axes ...int) (Dimensions, error) {
	if len(axes) == 0 || len(axes) > 3 {
		return Dimensions{}, argumentError(fmt.Sprintf("arrays have 1 to 3 dimensions, got %d", len(axes)))
	}
	var d Dimensions
	for i, n := range axes {
		if n <= 0 {
			return Dimensions{}, argumentError(fmt.Sprintf("dimension %d must be positive, got %d", i, n))
		}
		d.axes[i] = n
	}
	d.rank = len(axes)
	return d, nil
}

// Dim creates one-dimensional dimensions. It panics if n is not positive.
func Dim(n int) Dimensions {
	d, err := NewDimensions(n)
	if err != nil {
		panic(err)
	}
	return d
}

// ParseDimensions parses "5", "2,3" or "4 3 2". Empty text and "0" yield
// the scalar (rank 0) dimensions.
func ParseDimensions(s string) (Dimensions, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return Dimensions{}, nil
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	axes := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Dimensions{}, formatError(s, "invalid dimensions")
		}
		axes = append(axes, n)
	}
	return NewDimensions(axes...)
}

// Rank returns the number of axes.
func (d Dimensions) Rank() int { return d.rank }

// IsEmpty reports whether d describes a scalar.
func (d Dimensions) IsEmpty() bool { return d.rank == 0 }

// Axes returns the axis lengths.
func (d Dimensions) Axes() []int { return append([]int(nil), d.axes[:d.rank]...) }

// Len returns the element count.
func (d Dimensions) Len() int {
	if d.rank == 0 {
		return 0
	}
	n := 1
	for _, a := range d.axes[:d.rank] {
		n *= a
	}
	return n
}

// String renders the comma-separated form used by decorated data.
func (d Dimensions) String() string {
	parts := make([]string, d.rank)
	for i, a := range d.axes[:d.rank] {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, ",")
}

// Linear maps a coordinate to its row-major position.
func (d Dimensions) Linear(coords ...int) (int, error) {
	if len(coords) != d.rank {
		return 0, argumentError(fmt.Sprintf("expected %d indices, got %d", d.rank, len(coords)))
	}
	pos := 0
	for i, c := range coords {
		if c < 0 || c >= d.axes[i] {
			return 0, &Error{Code: ErrCodeRange, Message: fmt.Sprintf("index %d out of range [0,%d)", c, d.axes[i]), Input: FormatIndex(coords...)}
		}
		pos = pos*d.axes[i] + c
	}
	return pos, nil
}

// Coords maps a row-major position back to its coordinate.
func (d Dimensions) Coords(pos int) []int {
	coords := make([]int, d.rank)
	for i := d.rank - 1; i >= 0; i-- {
		coords[i] = pos % d.axes[i]
		pos /= d.axes[i]
	}
	return coords
}

// Index renders the bracketed coordinate of a row-major position: "[1,2]".
func (d Dimensions) Index(pos int) string { return FormatIndex(d.Coords(pos)...) }

// FormatIndex renders coordinates in bracketed form.
func FormatIndex(coords ...int) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseIndex parses a bracketed coordinate such as "[1,2]".
func ParseIndex(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, formatError(s, "index must be bracketed")
	}
	fields := strings.Split(s[1:len(s)-1], ",")
	coords := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, formatError(s, "invalid index")
		}
		coords[i] = n
	}
	return coords, nil
}
