package sqlite

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// serializeVector packs a float32 slice into the LittleEndian BLOB layout
// sqlite-vec expects for float[] columns.
func serializeVector(vec []float32) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, vec); err != nil {
		return nil, fmt.Errorf("serialize vector: %w", err)
	}
	return buf.Bytes(), nil
}
