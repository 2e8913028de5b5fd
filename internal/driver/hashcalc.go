package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
)

// Digest identifies a cache entry.
type Digest [32]byte

// fingerprint folds every option that changes parser output into a digest.
// Options that only affect rendering or scheduling stay out.
func (o Options) fingerprint() Digest {
	h := sha256.New()
	var buf [8]byte
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(n)))
		_, _ = h.Write(buf[:])
	}
	writeList := func(items []string) {
		if items == nil {
			writeInt(-1)
			return
		}
		writeInt(len(items))
		_, _ = h.Write([]byte(strings.Join(items, "\x00")))
	}
	writeInt(int(diskCacheSchemaVersion))
	writeList(o.Italic)
	writeList(o.Bold)
	writeInt(o.MaxDepth)
	writeInt(o.MaxErrors)
	writeInt(o.MaxDiagnostics)
	flags := 0
	if o.Recover {
		flags |= 1
	}
	if o.NFC {
		flags |= 2
	}
	if o.FatalWarnings {
		flags |= 4
	}
	writeInt(flags)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// combineDigest: H(content || options).
func combineDigest(content [32]byte, opts Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	_, _ = h.Write(opts[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
