package localcache

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"
)

// On-disk entry layout, version 1:
//
//	offset 0:  version  uint16, little-endian
//	offset 2:  expiry   int64, little-endian, Unix seconds
//	offset 10: payload  file size - 10 bytes
//
// The payload carries no length field; its size is implied by the file
// size. A later Add for the same key replaces the file wholesale.
const (
	entryVersion uint16 = 1
	headerSize          = 10
)

// entryHeader is the fixed-width prefix of every entry file.
type entryHeader struct {
	version uint16
	expiry  int64 // Unix seconds
}

func (h entryHeader) encode() [headerSize]byte {
	var buf [headerSize]byte
	binary.LittleEndian.PutUint16(buf[0:2], h.version)
	binary.LittleEndian.PutUint64(buf[2:10], uint64(h.expiry))
	return buf
}

func decodeHeader(buf [headerSize]byte) entryHeader {
	return entryHeader{
		version: binary.LittleEndian.Uint16(buf[0:2]),
		expiry:  int64(binary.LittleEndian.Uint64(buf[2:10])),
	}
}

// writeEntry writes the header followed by the payload. The write is not
// atomic with respect to concurrent readers: a reader racing with it may
// see a truncated payload region, which surfaces on its side as a
// CorruptEntryError rather than as silent bad data.
func writeEntry(f afero.File, expiry time.Time, payload []byte) error {
	header := entryHeader{version: entryVersion, expiry: expiry.Unix()}

	buf := header.encode()
	if _, err := f.Write(buf[:]); err != nil {
		return fmt.Errorf("failed to write entry header: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		return fmt.Errorf("failed to write entry payload: %w", err)
	}
	return nil
}

// readEntry reads an entry file that is known to exist. It returns the
// payload, or expired=true when the entry's expiry is at or before now.
//
// The header version is validated: a file written by an incompatible
// layout revision fails with ErrUnsupportedVersion instead of being
// reinterpreted. Payload length is derived from the file size, and the
// read must deliver exactly that many bytes; anything short is a
// CorruptEntryError, never a miss.
func readEntry(f afero.File, now time.Time) (payload []byte, expired bool, err error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(f, buf[:]); err != nil {
		return nil, false, fmt.Errorf("failed to read entry header from %s: %w", f.Name(), err)
	}

	header := decodeHeader(buf)
	if header.version != entryVersion {
		return nil, false, fmt.Errorf("%w: %d in %s", ErrUnsupportedVersion, header.version, f.Name())
	}
	if header.expiry <= now.Unix() {
		return nil, true, nil
	}

	info, err := f.Stat()
	if err != nil {
		return nil, false, fmt.Errorf("failed to stat entry %s: %w", f.Name(), err)
	}

	want := info.Size() - headerSize
	if want < 0 {
		want = 0
	}
	payload = make([]byte, want)
	n, err := io.ReadFull(f, payload)
	if err != nil {
		return nil, false, &CorruptEntryError{Path: f.Name(), Want: want, Got: int64(n)}
	}
	return payload, false, nil
}
