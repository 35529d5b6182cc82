package fsevent

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

// Flags is the raw bit-set reported by the native filesystem event stream.
// Bits the package does not know about are carried through unchanged.
type Flags uint32

// FSEvents stream and item flags.
const (
	MustScanSubDirs    Flags = 0x00000001
	UserDropped        Flags = 0x00000002
	KernelDropped      Flags = 0x00000004
	EventIdsWrapped    Flags = 0x00000008
	HistoryDone        Flags = 0x00000010
	RootChanged        Flags = 0x00000020
	Mount              Flags = 0x00000040
	Unmount            Flags = 0x00000080
	ItemCreated        Flags = 0x00000100
	ItemRemoved        Flags = 0x00000200
	ItemInodeMetaMod   Flags = 0x00000400
	ItemRenamed        Flags = 0x00000800
	ItemModified       Flags = 0x00001000
	ItemFinderInfoMod  Flags = 0x00002000
	ItemChangeOwner    Flags = 0x00004000
	ItemXattrMod       Flags = 0x00008000
	ItemIsFile         Flags = 0x00010000
	ItemIsDir          Flags = 0x00020000
	ItemIsSymlink      Flags = 0x00040000
	OwnEvent           Flags = 0x00080000
	ItemIsHardlink     Flags = 0x00100000
	ItemIsLastHardlink Flags = 0x00200000
	ItemCloned         Flags = 0x00400000
)

// ErrUnknownFlag is returned by ParseFlags for a name outside the flag table.
var ErrUnknownFlag = errors.New("unknown flag")

// FlagName pairs a single bit with its display name.
type FlagName struct {
	Name  string
	Value Flags
}

// flagNames is ordered by bit value.
var flagNames = [...]FlagName{
	{"MustScanSubDirs", MustScanSubDirs},
	{"UserDropped", UserDropped},
	{"KernelDropped", KernelDropped},
	{"EventIdsWrapped", EventIdsWrapped},
	{"HistoryDone", HistoryDone},
	{"RootChanged", RootChanged},
	{"Mount", Mount},
	{"Unmount", Unmount},
	{"ItemCreated", ItemCreated},
	{"ItemRemoved", ItemRemoved},
	{"ItemInodeMetaMod", ItemInodeMetaMod},
	{"ItemRenamed", ItemRenamed},
	{"ItemModified", ItemModified},
	{"ItemFinderInfoMod", ItemFinderInfoMod},
	{"ItemChangeOwner", ItemChangeOwner},
	{"ItemXattrMod", ItemXattrMod},
	{"ItemIsFile", ItemIsFile},
	{"ItemIsDir", ItemIsDir},
	{"ItemIsSymlink", ItemIsSymlink},
	{"OwnEvent", OwnEvent},
	{"ItemIsHardlink", ItemIsHardlink},
	{"ItemIsLastHardlink", ItemIsLastHardlink},
	{"ItemCloned", ItemCloned},
}

// known is the union of every bit in flagNames.
const known Flags = 0x007FFFFF

// KnownFlags returns the flag table in bit order.
func KnownFlags() []FlagName {
	out := make([]FlagName, len(flagNames))
	copy(out, flagNames[:])
	return out
}

// Has reports whether any bit of f is set.
func (flags Flags) Has(f Flags) bool {
	return flags&f != 0
}

// Names returns the names of the set bits in ascending bit order. Bits
// without a name are reported together as a single hex item at the end.
func (flags Flags) Names() []string {
	names := make([]string, 0, bits.OnesCount32(uint32(flags)))
	for _, fn := range flagNames {
		if flags&fn.Value != 0 {
			names = append(names, fn.Name)
		}
	}
	if rest := flags &^ known; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return names
}

// String renders the set bits joined by "|", or "0" for the empty set.
func (flags Flags) String() string {
	if flags == 0 {
		return "0"
	}
	return strings.Join(flags.Names(), "|")
}

// ParseFlags is the inverse of Flags.Names. Items may be flag names or hex
// literals such as the ones Names emits for unknown bits.
func ParseFlags(names []string) (Flags, error) {
	var flags Flags
	for _, name := range names {
		name = strings.TrimSpace(name)
		if f, ok := lookupFlag(name); ok {
			flags |= f
			continue
		}
		if strings.HasPrefix(name, "0x") {
			v, err := strconv.ParseUint(name[2:], 16, 32)
			if err != nil {
				return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
			}
			flags |= Flags(v)
			continue
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
	return flags, nil
}

func lookupFlag(name string) (Flags, bool) {
	for _, fn := range flagNames {
		if fn.Name == name {
			return fn.Value, true
		}
	}
	return 0, false
}
