// Package lake stores bulk curve data outside the relational database.
// Curves travel as snappy-compressed frames: a JSON header line carrying
// the channel list, then one JSON array per sample row. The format is
// self-describing so frames can be read back without the catalog row.
package lake

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
)

// Frame describes one curve dataset inside a lake blob.
type Frame struct {
	Dataset  string   `json:"dataset"`
	UWI      string   `json:"uwi,omitempty"`
	Channels []string `json:"channels"`
	Null     float64  `json:"null,omitempty"`
	Rows     int      `json:"rows"`
}

// EncodeFrame serializes a frame header and its sample rows into a single
// snappy block. Null samples keep the frame's declared sentinel value so
// the payload round-trips exactly what the source file carried.
func EncodeFrame(meta Frame, rows [][]float64) ([]byte, error) {
	if len(meta.Channels) == 0 {
		return nil, fmt.Errorf("frame has no channels")
	}
	meta.Rows = len(rows)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("encode frame header: %w", err)
	}
	for i, row := range rows {
		if len(row) != len(meta.Channels) {
			return nil, fmt.Errorf("row %d has %d values for %d channels", i, len(row), len(meta.Channels))
		}
		if err := enc.Encode(row); err != nil {
			return nil, fmt.Errorf("encode row %d: %w", i, err)
		}
	}
	return snappy.Encode(nil, buf.Bytes()), nil
}

// DecodeFrame parses a blob produced by EncodeFrame.
func DecodeFrame(blob []byte) (Frame, [][]float64, error) {
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		return Frame{}, nil, fmt.Errorf("decompress frame: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	if !sc.Scan() {
		return Frame{}, nil, fmt.Errorf("frame is empty")
	}
	var meta Frame
	if err := json.Unmarshal(sc.Bytes(), &meta); err != nil {
		return Frame{}, nil, fmt.Errorf("decode frame header: %w", err)
	}

	rows := make([][]float64, 0, meta.Rows)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var row []float64
		if err := json.Unmarshal(line, &row); err != nil {
			return Frame{}, nil, fmt.Errorf("decode row %d: %w", len(rows), err)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return Frame{}, nil, fmt.Errorf("scan frame: %w", err)
	}
	if meta.Rows != len(rows) {
		return Frame{}, nil, fmt.Errorf("frame header declares %d rows, found %d", meta.Rows, len(rows))
	}
	return meta, rows, nil
}
