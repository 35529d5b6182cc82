package fsevent

import "fmt"

// FileChangeEvent is a single change reported by the native event stream.
// The path carries no existence guarantee at classification time.
type FileChangeEvent struct {
	Path  string
	Flags Flags
}

// NewEvent creates a FileChangeEvent.
func NewEvent(path string, flags Flags) FileChangeEvent {
	return FileChangeEvent{Path: path, Flags: flags}
}

// IsModified reports a content change or a metadata-only change.
func (e FileChangeEvent) IsModified() bool {
	return e.Flags.Has(ItemModified | ItemInodeMetaMod)
}

// IsTouched reports a metadata-only change such as a chmod or utimes.
func (e FileChangeEvent) IsTouched() bool {
	return e.Flags.Has(ItemInodeMetaMod)
}

// IsRemoved reports a deletion.
func (e FileChangeEvent) IsRemoved() bool {
	return e.Flags.Has(ItemRemoved)
}

// IsNewFile reports a creation with no other signal in the same
// notification. A file created and written in one coalesced event is
// reported as modified instead.
func (e FileChangeEvent) IsNewFile() bool {
	return !e.IsModified() && !e.IsRemoved() && !e.IsTouched() && e.Flags.Has(ItemCreated)
}

// Kind collapses the predicates into one tag.
func (e FileChangeEvent) Kind() Kind {
	switch {
	case e.IsRemoved():
		return KindRemoved
	case e.IsTouched():
		return KindTouched
	case e.IsModified():
		return KindModified
	case e.IsNewFile():
		return KindNewFile
	default:
		return KindNone
	}
}

func (e FileChangeEvent) String() string {
	return fmt.Sprintf("FileChangeEvent(%s, %s)", e.Path, e.Flags)
}

// Kind is the semantic category of a FileChangeEvent.
type Kind uint8

const (
	KindNone Kind = iota
	KindNewFile
	KindModified
	KindTouched
	KindRemoved
)

var kindNames = [...]string{
	KindNone:     "none",
	KindNewFile:  "created",
	KindModified: "modified",
	KindTouched:  "touched",
	KindRemoved:  "removed",
}

// Kinds lists every Kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindNone, KindNewFile, KindModified, KindTouched, KindRemoved}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
