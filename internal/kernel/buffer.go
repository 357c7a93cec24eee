package kernel

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/edcore/internal/decoration"
	"github.com/dshills/edcore/internal/delta"
	"github.com/dshills/edcore/internal/diagnostic"
	"github.com/dshills/edcore/internal/folds"
	"github.com/dshills/edcore/internal/lineindex"
	"github.com/dshills/edcore/internal/storage"
	"github.com/dshills/edcore/internal/styles"
	"github.com/dshills/edcore/internal/undo"
)

// TextDelta re-exports delta.TextDelta at the kernel boundary so callers
// of this package don't need a second import for the common case; it is a
// plain type alias, not a wrapper, so delta.TextDelta values interoperate
// freely.
type TextDelta = delta.TextDelta

// BufferID is an opaque, monotonically-minted buffer identifier (spec
// §3 "BufferId / ViewId"), matching the teacher's atomic-counter
// RevisionID pattern.
type BufferID uint64

var nextBufferID uint64

// NewBufferID mints a fresh BufferID.
func NewBufferID() BufferID {
	return BufferID(atomic.AddUint64(&nextBufferID, 1))
}

// LineEnding records the line-ending preference detected at ingestion
// (spec §3 "Document text"): newlines are normalized to LF in the
// in-memory stream, but the original preference is preserved as buffer
// metadata for the host's save path.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

// Option configures a Buffer at construction, mirroring the teacher's
// functional-option style (buffer.Option / engine.Option) rather than a
// config struct or file — the kernel itself reads no files (spec §6
// "Persisted state: None at the core layer").
type Option func(*Buffer)

// WithURI attaches a host-supplied URI to the buffer.
func WithURI(uri string) Option {
	return func(b *Buffer) { b.uri = uri }
}

// WithLineEnding overrides the detected line-ending preference (used when
// a host already knows it, e.g. re-opening a buffer whose bytes were
// pre-normalized elsewhere).
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) { b.lineEnding = le }
}

// versionedDelta pairs a TextDelta with the version it produced, to
// support ChangesSince queries (§4 [EXPANSION] "Change-since-revision
// queries").
type versionedDelta struct {
	delta TextDelta
}

// Buffer is the buffer core of spec §2 item 5 / §3 "Buffer": the piece
// table, the line index kept consistent with it, the overlay managers, the
// undo manager, and the last-emitted-delta slot, guarded by one RWMutex
// exactly like the teacher's internal/engine/buffer.Buffer (RLock for
// readers, Lock for command execution — spec §5).
type Buffer struct {
	mu sync.RWMutex

	id         BufferID
	uri        string
	lineEnding LineEnding

	text  *storage.Table
	lines *lineindex.Index

	Styles      *styles.Manager
	Folds       *folds.Manager
	Decorations *decoration.Manager
	Diagnostics *diagnostic.Manager

	undo *undo.Manager

	version  uint64
	lastDelta *TextDelta // buffered delta slot; one at a time per spec §3

	snapshots map[string]string // named point-in-time text captures
	changeLog []versionedDelta  // history for ChangesSince/LatestChanges

	documentSymbols any // opaque outline, set by ReplaceDocumentSymbols
}

// New returns an empty Buffer.
func New(opts ...Option) *Buffer {
	b, _ := NewFromString("", opts...)
	return b
}

// NewFromString builds a Buffer whose initial content is text. CRLF
// sequences are normalized to LF on ingestion; if the source text used
// CRLF throughout, that preference is recorded (spec §3 "Line-ending
// normalization to LF is applied at ingestion; the original preference...
// is stored as buffer metadata for save").
func NewFromString(text string, opts ...Option) (*Buffer, error) {
	detected := LF
	if strings.Contains(text, "\r\n") {
		detected = CRLF
	}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")

	table, err := storage.NewFromString(normalized)
	if err != nil {
		return nil, wrapErr(InvalidUTF8, err)
	}

	b := &Buffer{
		id:          NewBufferID(),
		lineEnding:  detected,
		text:        table,
		lines:       lineindex.NewFromString(normalized),
		Styles:      styles.NewManager(),
		Folds:       folds.NewManager(),
		Decorations: decoration.NewManager(),
		Diagnostics: diagnostic.NewManager(),
		undo:        undo.NewManager(),
		snapshots:   make(map[string]string),
	}
	for _, o := range opts {
		o(b)
	}
	return b, nil
}

// ID returns the buffer's identifier.
func (b *Buffer) ID() BufferID { return b.id }

// URI returns the host-supplied URI, if any.
func (b *Buffer) URI() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.uri
}

// SetURI updates the host-supplied URI.
func (b *Buffer) SetURI(uri string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uri = uri
}

// LineEnding returns the buffer's recorded line-ending preference.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Version returns the current buffer version (bumped once per applied
// edit command or ProcessingEdit).
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// IsModified reports whether the buffer has unsaved changes.
func (b *Buffer) IsModified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.undo.IsModified()
}

// MarkSaved closes the currently open undo group (Open Question decision
// #2 in DESIGN.md) and records the resulting state as the clean point.
func (b *Buffer) MarkSaved() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.undo.MarkSaved()
}

// CharCount returns the total character count.
func (b *Buffer) CharCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Len()
}

// LineCount returns the number of logical lines (always >= 1).
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines.LineCount()
}

// Text returns the full document text.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.Text()
}

// TextRange streams text[start,end) without materializing the whole
// document (spec §4.1).
func (b *Buffer) TextRange(start, end int) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, err := b.text.GetTextRange(start, end)
	if err != nil {
		return "", wrapErr(OutOfRange, err)
	}
	return s, nil
}

// LineCharRange returns the half-open character range spanned by logical
// line i (excluding its own trailing newline).
func (b *Buffer) LineCharRange(line int) (start, end int, err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, e, err := b.lines.LineCharRange(line)
	if err != nil {
		return 0, 0, wrapErr(OutOfRange, err)
	}
	return s, e, nil
}

// LineText returns the text of logical line i, excluding its trailing
// newline.
func (b *Buffer) LineText(line int) (string, error) {
	b.mu.RLock()
	start, end, err := b.lines.LineCharRange(line)
	b.mu.RUnlock()
	if err != nil {
		return "", wrapErr(OutOfRange, err)
	}
	return b.TextRange(start, end)
}

// CharToLineCol converts a character offset to (logical line, column).
func (b *Buffer) CharToLineCol(char int) (line, col int, err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	l, c, err := b.lines.CharToLineCol(char)
	if err != nil {
		return 0, 0, wrapErr(OutOfRange, err)
	}
	return l, c, nil
}

// LineColToChar converts (logical line, column) to a character offset.
func (b *Buffer) LineColToChar(line, col int) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, err := b.lines.LineColToChar(line, col)
	if err != nil {
		return 0, wrapErr(OutOfRange, err)
	}
	return c, nil
}

// Compact rewrites the piece table against a fresh Add buffer (spec §4.1
// "compact"). Callers decide when to invoke it (spec §5 resource policy).
func (b *Buffer) Compact() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text.Compact()
}

// CreateSnapshot captures the current full text under name, independent of
// undo history ([EXPANSION] supplemental feature grounded in the
// teacher's engine.Engine.CreateSnapshot).
func (b *Buffer) CreateSnapshot(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots[name] = b.text.Text()
}

// SnapshotText returns a previously captured named snapshot's text.
func (b *Buffer) SnapshotText(name string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.snapshots[name]
	return s, ok
}

// BumpVersion increments the buffer version for a non-text-edit state
// change (a ProcessingEdit other than a text edit — style/fold/decoration/
// diagnostic/symbol replacement) and returns the new version, per spec §6
// "Applied atomically; each application increments version." kernel keeps
// Symbols opaque (any) the same way undo.TextEdit keeps selections opaque,
// so internal/processor's DocumentSymbol type need not live here.
func (b *Buffer) BumpVersion() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.version++
	return b.version
}

// SetDocumentSymbols replaces the buffer's outline (spec §6
// "ReplaceDocumentSymbols{outline}").
func (b *Buffer) SetDocumentSymbols(symbols any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.documentSymbols = symbols
}

// DocumentSymbols returns the most recently set outline, or nil.
func (b *Buffer) DocumentSymbols() any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.documentSymbols
}

// DocumentState is the shape returned by get_document_state (spec §6).
type DocumentState struct {
	Version    uint64
	LineCount  int
	CharCount  int
	IsModified bool
}

// DocumentState returns the document-level state query of spec §6.
func (b *Buffer) DocumentState() DocumentState {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return DocumentState{
		Version:    b.version,
		LineCount:  b.lines.LineCount(),
		CharCount:  b.text.Len(),
		IsModified: b.undo.IsModified(),
	}
}
