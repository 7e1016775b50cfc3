package notsosql

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

const (
	snapshotMagic   = "NSQL"
	snapshotVersion = 1
	checksumSize    = 4
)

// Serialize encodes the whole store. The layout is
//
//	magic | version | body | crc32(body)
//
// where the body lists tables in name order and rows in id order, so
// equal stores encode to equal bytes. Counts and lengths are uvarints.
func (se *StorageEngine) Serialize() ([]byte, error) {
	var body []byte

	names := se.TableNames()
	body = binary.AppendUvarint(body, uint64(len(names)))
	for _, name := range names {
		t := se.tables[name]

		body = appendString(body, name)
		body = binary.AppendUvarint(body, uint64(len(t.columns)))
		for _, col := range t.columns {
			body = appendString(body, col)
		}

		body = binary.AppendUvarint(body, t.nextID)
		body = binary.AppendUvarint(body, uint64(t.Len()))
		t.Scan(func(id uint64, row Row) bool {
			body = binary.AppendUvarint(body, id)
			keys := row.Keys()
			body = binary.AppendUvarint(body, uint64(len(keys)))
			for _, k := range keys {
				body = appendString(body, k)
				body = appendString(body, row.Data[k])
			}
			return true
		})
	}

	buf := make([]byte, 0, len(snapshotMagic)+1+len(body)+checksumSize)
	buf = append(buf, snapshotMagic...)
	buf = append(buf, snapshotVersion)
	buf = append(buf, body...)
	buf = binary.BigEndian.AppendUint32(buf, crc32.ChecksumIEEE(body))

	return buf, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// Deserialize decodes a buffer produced by Serialize. Anything else fails
// with a *DecodeError.
func Deserialize(buf []byte) (*StorageEngine, error) {
	headerSize := len(snapshotMagic) + 1
	if len(buf) < headerSize+checksumSize {
		return nil, decodeErrorf("snapshot too short: %d bytes", len(buf))
	}

	if string(buf[:len(snapshotMagic)]) != snapshotMagic {
		return nil, decodeErrorf("invalid file magic, not a snapshot file")
	}

	if v := buf[len(snapshotMagic)]; v != snapshotVersion {
		return nil, decodeErrorf("unsupported snapshot version %d", v)
	}

	body := buf[headerSize : len(buf)-checksumSize]
	want := binary.BigEndian.Uint32(buf[len(buf)-checksumSize:])
	if got := crc32.ChecksumIEEE(body); got != want {
		return nil, decodeErrorf("checksum mismatch: have %08x, want %08x", got, want)
	}

	d := decoder{r: bytes.NewReader(body)}
	se, err := d.storageEngine()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	if d.r.Len() != 0 {
		return nil, decodeErrorf("%d trailing bytes after snapshot body", d.r.Len())
	}

	return se, nil
}

type decoder struct {
	r *bytes.Reader
}

func (d decoder) uvarint() (uint64, error) {
	v, err := binary.ReadUvarint(d.r)
	if errors.Is(err, io.EOF) {
		return 0, io.ErrUnexpectedEOF
	}

	return v, err
}

// count reads a length and rejects values that cannot possibly fit in
// the remaining bytes, each element taking at least minSize bytes.
func (d decoder) count(minSize int) (int, error) {
	n, err := d.uvarint()
	if err != nil {
		return 0, err
	}

	if n > uint64(d.r.Len()/minSize) {
		return 0, io.ErrUnexpectedEOF
	}

	return int(n), nil
}

func (d decoder) string() (string, error) {
	n, err := d.count(1)
	if err != nil {
		return "", err
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		return "", err
	}

	return string(b), nil
}

func (d decoder) storageEngine() (*StorageEngine, error) {
	numTables, err := d.count(1)
	if err != nil {
		return nil, err
	}

	se := NewStorageEngine()
	for i := 0; i < numTables; i++ {
		name, err := d.string()
		if err != nil {
			return nil, err
		}

		if _, ok := se.tables[name]; ok {
			return nil, fmt.Errorf("duplicate table %q", name)
		}

		t, err := d.table(name)
		if err != nil {
			return nil, err
		}

		se.tables[name] = t
	}

	return se, nil
}

func (d decoder) table(name string) (*Table, error) {
	numCols, err := d.count(1)
	if err != nil {
		return nil, err
	}

	cols := make([]string, numCols)
	for i := range cols {
		if cols[i], err = d.string(); err != nil {
			return nil, err
		}
	}

	t := newTable(cols)
	if t.nextID, err = d.uvarint(); err != nil {
		return nil, err
	}

	numRows, err := d.count(2)
	if err != nil {
		return nil, err
	}

	for i := 0; i < numRows; i++ {
		id, err := d.uvarint()
		if err != nil {
			return nil, err
		}

		if id >= t.nextID {
			return nil, fmt.Errorf("table %q: row id %d not below next id %d", name, id, t.nextID)
		}

		if _, ok := t.Row(id); ok {
			return nil, fmt.Errorf("table %q: duplicate row id %d", name, id)
		}

		row, err := d.row()
		if err != nil {
			return nil, err
		}

		t.rows.ReplaceOrInsert(rowItem{id: id, row: row})
	}

	return t, nil
}

func (d decoder) row() (Row, error) {
	numKeys, err := d.count(2)
	if err != nil {
		return Row{}, err
	}

	row := Row{Data: make(map[string]string, numKeys)}
	for i := 0; i < numKeys; i++ {
		k, err := d.string()
		if err != nil {
			return Row{}, err
		}

		v, err := d.string()
		if err != nil {
			return Row{}, err
		}

		row.Data[k] = v
	}

	return row, nil
}
