package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	binaryHeaderSize   = 80
	binaryTriangleSize = 50
)

// ErrTruncated is returned when a binary file is shorter than its triangle
// count requires.
var ErrTruncated = errors.New("stl: truncated binary data")

// Parse reads an STL file and returns a Mesh.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*Mesh, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return Decode(data)
}

// Read decodes an STL stream.
func Read(r io.Reader) (*Mesh, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading stl: %w", err)
	}
	return Decode(data)
}

// Decode decodes STL bytes. Binary files may also begin with "solid", so the
// binary size check wins over the ASCII prefix.
func Decode(data []byte) (*Mesh, error) {
	if isBinary(data) {
		return parseBinary(data)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return parseASCII(bytes.NewReader(data))
	}
	return parseBinary(data)
}

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return len(data) == binaryHeaderSize+4+int(count)*binaryTriangleSize
}

// parseASCII parses an ASCII STL file
func parseASCII(reader io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	mesh := &Mesh{}

	var (
		normal   [3]float32
		vertices [3][3]float32
		n        int
		line     int
	)

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				v, err := parseTriple(fields[2:5])
				if err != nil {
					return nil, fmt.Errorf("line %d: normal: %w", line, err)
				}
				normal = v
			}
			n = 0

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			v, err := parseTriple(fields[1:4])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", line, err)
			}
			if n < 3 {
				vertices[n] = v
			}
			n++

		case "endfacet":
			if n == 3 {
				mesh.addTriangle(normal, vertices)
			}
			n = 0
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ASCII STL: %w", err)
	}

	return mesh, nil
}

func parseTriple(fields []string) ([3]float32, error) {
	var out [3]float32
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseBinary parses a binary STL file
func parseBinary(data []byte) (*Mesh, error) {
	if len(data) < binaryHeaderSize+4 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncated, len(data))
	}

	mesh := &Mesh{
		Name: string(bytes.TrimRight(data[:binaryHeaderSize], "\x00 ")),
	}

	count := int(binary.LittleEndian.Uint32(data[binaryHeaderSize:]))
	body := data[binaryHeaderSize+4:]
	if len(body) < count*binaryTriangleSize {
		return nil, fmt.Errorf("%w: %d triangles declared, %d bytes present", ErrTruncated, count, len(body))
	}

	mesh.Positions = make([]float32, 0, count*9)
	mesh.Normals = make([]float32, 0, count*9)

	for i := 0; i < count; i++ {
		rec := body[i*binaryTriangleSize:]
		var floats [12]float32
		for j := range floats {
			floats[j] = math.Float32frombits(binary.LittleEndian.Uint32(rec[j*4:]))
		}
		// 2 trailing attribute bytes are ignored
		mesh.addTriangle(
			[3]float32{floats[0], floats[1], floats[2]},
			[3][3]float32{
				{floats[3], floats[4], floats[5]},
				{floats[6], floats[7], floats[8]},
				{floats[9], floats[10], floats[11]},
			},
		)
	}

	return mesh, nil
}
