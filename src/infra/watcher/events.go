package watcher

import (
	"github.com/contre95/fsbridge/src/fsevent"
	"github.com/fsnotify/fsnotify"
)

var opFlags = [...]struct {
	op   fsnotify.Op
	flag fsevent.Flags
}{
	{fsnotify.Create, fsevent.ItemCreated},
	{fsnotify.Remove, fsevent.ItemRemoved},
	{fsnotify.Write, fsevent.ItemModified},
	{fsnotify.Chmod, fsevent.ItemInodeMetaMod},
	{fsnotify.Rename, fsevent.ItemRenamed},
}

// FlagsFromOp maps a portable fsnotify operation onto the FSEvents flag set.
func FlagsFromOp(op fsnotify.Op) fsevent.Flags {
	var flags fsevent.Flags
	for _, m := range opFlags {
		if op.Has(m.op) {
			flags |= m.flag
		}
	}
	return flags
}

// EventFromFsnotify converts an fsnotify event into a FileChangeEvent.
func EventFromFsnotify(ev fsnotify.Event) fsevent.FileChangeEvent {
	return fsevent.NewEvent(ev.Name, FlagsFromOp(ev.Op))
}
