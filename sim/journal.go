package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// journalRecord wraps a trade with its content fingerprint so corruption
// of a journal file is detected on read.
type journalRecord[R comparable] struct {
	Trade       Trade[R] `cbor:"1,keyasint"`
	Fingerprint string   `cbor:"2,keyasint"`
}

// JournalWriter appends trades to a CBOR stream. It is typically wired to
// Options.OnTrade through Append; the caller owns the underlying writer.
type JournalWriter[R comparable] struct {
	enc *cbor.Encoder
	err error
}

// NewJournalWriter creates a writer appending to w.
func NewJournalWriter[R comparable](w io.Writer) *JournalWriter[R] {
	return &JournalWriter[R]{enc: cbor.NewEncoder(w)}
}

// Append writes one trade record. After the first failure every further
// call returns the same error, so the writer can be wired as a callback
// and checked once at the end of the run.
func (jw *JournalWriter[R]) Append(tr Trade[R]) error {
	if jw.err != nil {
		return jw.err
	}
	rec := journalRecord[R]{Trade: tr, Fingerprint: tr.Fingerprint()}
	if err := jw.enc.Encode(rec); err != nil {
		jw.err = fmt.Errorf("journal append: %w", err)
		return jw.err
	}
	return nil
}

// Err returns the first error Append encountered, if any.
func (jw *JournalWriter[R]) Err() error { return jw.err }

// ReadJournal decodes a complete journal stream, verifying every record's
// fingerprint.
func ReadJournal[R comparable](r io.Reader) ([]Trade[R], error) {
	dec := cbor.NewDecoder(r)
	var trades []Trade[R]
	for {
		var rec journalRecord[R]
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				return trades, nil
			}
			return nil, fmt.Errorf("journal decode at record %d: %w", len(trades), err)
		}
		if rec.Trade.Fingerprint() != rec.Fingerprint {
			return nil, fmt.Errorf("journal record %d: fingerprint mismatch", len(trades))
		}
		trades = append(trades, rec.Trade)
	}
}
