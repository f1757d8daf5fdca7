package exactq

import (
	"encoding/binary"
	"io"
	"unsafe"

	"github.com/pkg/errors"
)

// The wire format of a state is a varuint sample count followed by the raw
// little-endian sample data, unpadded. No type tag, no checksum: the element
// type is known from the schema and the format is only exchanged between
// trusted peers of the same cluster.

// maxWireBytes caps the sample payload a serialized state may declare. A
// prefix beyond it cannot be a legitimate state and is refused before any
// allocation happens.
const maxWireBytes = 1 << 40

// byteReader adapts an io.Reader for binary.ReadUvarint without a per-read
// allocation.
type byteReader struct {
	r   io.Reader
	buf [1]byte
}

func (br *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(br.r, br.buf[:]); err != nil {
		return 0, err
	}
	return br.buf[0], nil
}

func writeVarUint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return errors.Wrap(err, "write size prefix")
}

func readVarUint(r io.Reader) (uint64, error) {
	br := byteReader{r: r}
	v, err := binary.ReadUvarint(&br)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, errors.Wrap(ErrCannotReadAllData, "read size prefix")
		}
		return 0, errors.Wrap(err, "read size prefix")
	}
	return v, nil
}

// rawBytes reinterprets s as its backing bytes. The wire format is raw
// little-endian element data, which is the in-memory layout on every target
// the database ships for.
func rawBytes[T Value](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(elemSize[T]()))
}

func writeRaw[T Value](w io.Writer, s []T) error {
	if len(s) == 0 {
		return nil
	}
	_, err := w.Write(rawBytes(s))
	return errors.Wrap(err, "write samples")
}

func readRaw[T Value](r io.Reader, s []T) error {
	if len(s) == 0 {
		return nil
	}
	if _, err := io.ReadFull(r, rawBytes(s)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errors.Wrapf(ErrCannotReadAllData, "read %d samples", len(s))
		}
		return errors.Wrap(err, "read samples")
	}
	return nil
}
