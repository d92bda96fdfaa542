// Package scan resolves scanned barcodes to catalog records.
package scan

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/dmitrijs2005/readtrack/internal/client/models"
	"github.com/dmitrijs2005/readtrack/internal/logging"
)

var ErrInvalidBarcode = errors.New("invalid barcode")

var isbnPattern = regexp.MustCompile(`^(\d{10}|\d{13})$`)

// Sanitize keeps only digits and the letter X.
func Sanitize(payload string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == 'X' {
			return r
		}
		return -1
	}, payload)
}

// Valid reports whether s is exactly 10 or 13 digits.
func Valid(s string) bool {
	return isbnPattern.MatchString(s)
}

// LookupFunc fetches the record for a sanitized ISBN.
type LookupFunc func(ctx context.Context, isbn string) (models.BookDetails, error)

type Kind int

const (
	// Ignored: a lookup is pending, the scan was dropped.
	Ignored Kind = iota
	Invalid
	Resolved
	Failed
)

func (k Kind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Invalid:
		return "invalid"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of handling one scan.
type Outcome struct {
	Kind   Kind
	ISBN   string
	Book   models.BookDetails
	Err    error
	Notice string
}

// Resolver accepts at most one lookup at a time. After a successful
// lookup it stays busy until Reset, so repeated frames of the same
// barcode are not looked up again.
type Resolver struct {
	lookup  LookupFunc
	logger  logging.Logger
	pending atomic.Bool
}

func NewResolver(lookup LookupFunc, logger logging.Logger) *Resolver {
	return &Resolver{lookup: lookup, logger: logger}
}

// Handle processes one raw barcode payload.
func (r *Resolver) Handle(ctx context.Context, payload string) Outcome {
	if r.pending.Load() {
		return Outcome{Kind: Ignored}
	}

	isbn := Sanitize(payload)
	if !Valid(isbn) {
		r.logger.Debug(ctx, "rejected barcode", "payload", payload, "sanitized", isbn)
		return Outcome{Kind: Invalid, ISBN: isbn, Err: ErrInvalidBarcode, Notice: "Invalid barcode"}
	}

	if !r.pending.CompareAndSwap(false, true) {
		return Outcome{Kind: Ignored}
	}

	book, err := r.lookup(ctx, isbn)
	if err != nil {
		r.pending.Store(false)
		r.logger.Warn(ctx, "isbn lookup failed", "isbn", isbn, "error", err)
		return Outcome{Kind: Failed, ISBN: isbn, Err: err, Notice: "Could not find a book for ISBN " + isbn}
	}

	r.logger.Info(ctx, "isbn resolved", "isbn", isbn, "work_id", book.WorkID)
	return Outcome{Kind: Resolved, ISBN: isbn, Book: book}
}

// Reset makes the resolver accept scans again.
func (r *Resolver) Reset() {
	r.pending.Store(false)
}

func (r *Resolver) Pending() bool {
	return r.pending.Load()
}
