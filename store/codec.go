package store

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/etnz/younginvestor"
	"github.com/vmihailenco/msgpack/v5"
)

// codec turns a snapshot into the bytes of one save file.
type codec struct {
	ext       string
	marshal   func(younginvestor.Snapshot) ([]byte, error)
	unmarshal func([]byte) (younginvestor.Snapshot, error)
}

var jsonCodec = codec{
	ext: ".json",
	marshal: func(s younginvestor.Snapshot) ([]byte, error) {
		return json.MarshalIndent(s, "", "  ")
	},
	unmarshal: func(data []byte) (younginvestor.Snapshot, error) {
		var s younginvestor.Snapshot
		if err := json.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("invalid snapshot: %w", err)
		}
		return s, nil
	},
}

// msgpackCodec reuses the json field names so both formats share one layout.
var msgpackCodec = codec{
	ext: ".msgpack",
	marshal: func(s younginvestor.Snapshot) ([]byte, error) {
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(s); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
	unmarshal: func(data []byte) (younginvestor.Snapshot, error) {
		var s younginvestor.Snapshot
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&s); err != nil {
			return s, fmt.Errorf("invalid snapshot: %w", err)
		}
		return s, nil
	},
}

var gzipCodec = codec{
	ext: ".json.gz",
	marshal: func(s younginvestor.Snapshot) ([]byte, error) {
		data, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	},
	unmarshal: func(data []byte) (younginvestor.Snapshot, error) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return younginvestor.Snapshot{}, fmt.Errorf("invalid compressed snapshot: %w", err)
		}
		defer zr.Close()
		raw, err := io.ReadAll(zr)
		if err != nil {
			return younginvestor.Snapshot{}, fmt.Errorf("invalid compressed snapshot: %w", err)
		}
		return jsonCodec.unmarshal(raw)
	},
}
