// Package hasher computes xxHash64 digests, used for content-addressed output
// names and for verifying downloaded engine runtimes.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the full 16-character hex digest of data.
func Sum(data []byte) string {
	return encode(xxhash.Sum64(data))
}

// Short returns the first n hex characters of the digest of data. n outside
// 1..16 returns the full digest.
func Short(data []byte, n int) string {
	full := Sum(data)
	if n > 0 && n < len(full) {
		return full[:n]
	}
	return full
}

// SumReader streams r through the hash and returns the hex digest and the
// number of bytes read.
func SumReader(r io.Reader) (string, int64, error) {
	h := xxhash.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return "", n, err
	}
	return encode(h.Sum64()), n, nil
}

// Tee wraps w so that everything written is also hashed. Call Sum on the
// returned Digest once writing is done.
func Tee(w io.Writer) (io.Writer, *Digest) {
	d := &Digest{h: xxhash.New()}
	return io.MultiWriter(w, d.h), d
}

// Digest is a running hash created by Tee.
type Digest struct {
	h *xxhash.Digest
}

// Sum returns the hex digest of everything written so far.
func (d *Digest) Sum() string { return encode(d.h.Sum64()) }

// Verify compares a hex digest with the expected one, ignoring case.
func Verify(got, want string) error {
	if !strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want)) {
		return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
	}
	return nil
}

func encode(v uint64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return hex.EncodeToString(b[:])
}
