package elfheader

import "fmt"

// Class is the EI_CLASS identification byte
type Class uint8

const (
	ClassNone Class = 0
	Class32   Class = 1
	Class64   Class = 2
)

// DecodeClass maps the EI_CLASS byte to a Class
func DecodeClass(b byte) Class {
	return Class(b)
}

// Known reports whether c is one of the defined classes
func (c Class) Known() bool {
	return c <= Class64
}

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "None"
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return unknown(uint64(c))
	}
}

// DataEncoding is the EI_DATA identification byte
type DataEncoding uint8

const (
	DataNone DataEncoding = 0
	DataLSB  DataEncoding = 1
	DataMSB  DataEncoding = 2
)

// DecodeDataEncoding maps the EI_DATA byte to a DataEncoding
func DecodeDataEncoding(b byte) DataEncoding {
	return DataEncoding(b)
}

// Known reports whether d is one of the defined encodings
func (d DataEncoding) Known() bool {
	return d <= DataMSB
}

func (d DataEncoding) String() string {
	switch d {
	case DataNone:
		return "None"
	case DataLSB:
		return "2's complement, little endian"
	case DataMSB:
		return "2's complement, big endian"
	default:
		return unknown(uint64(d))
	}
}

// IdentVersion is the EI_VERSION identification byte
type IdentVersion uint8

const (
	VersionNone    IdentVersion = 0
	VersionCurrent IdentVersion = 1
)

// DecodeIdentVersion maps the EI_VERSION byte to an IdentVersion
func DecodeIdentVersion(b byte) IdentVersion {
	return IdentVersion(b)
}

// Known reports whether v is one of the defined versions
func (v IdentVersion) Known() bool {
	return v <= VersionCurrent
}

func (v IdentVersion) String() string {
	switch v {
	case VersionNone:
		return "None"
	case VersionCurrent:
		return "1 (current)"
	default:
		return unknown(uint64(v))
	}
}

// OSABI is the EI_OSABI identification byte
type OSABI uint8

const (
	OSABINone       OSABI = 0
	OSABIHPUX       OSABI = 1
	OSABINetBSD     OSABI = 2
	OSABIGNU        OSABI = 3
	OSABISolaris    OSABI = 6
	OSABIAIX        OSABI = 7
	OSABIIRIX       OSABI = 8
	OSABIFreeBSD    OSABI = 9
	OSABITru64      OSABI = 10
	OSABIModesto    OSABI = 11
	OSABIOpenBSD    OSABI = 12
	OSABIARMAEABI   OSABI = 64
	OSABIARM        OSABI = 97
	OSABIStandalone OSABI = 255

	OSABISysV  = OSABINone
	OSABILinux = OSABIGNU
)

var osabiNames = map[OSABI]string{
	OSABINone:       "UNIX - System V",
	OSABIHPUX:       "HP-UX",
	OSABINetBSD:     "NetBSD",
	OSABIGNU:        "GNU ELF",
	OSABISolaris:    "Sun Solaris",
	OSABIAIX:        "IBM AIX",
	OSABIIRIX:       "SGI Irix",
	OSABIFreeBSD:    "FreeBSD",
	OSABITru64:      "Compaq TRU64 UNIX",
	OSABIModesto:    "Novell Modesto",
	OSABIOpenBSD:    "OpenBSD",
	OSABIARMAEABI:   "ARM EABI",
	OSABIARM:        "ARM",
	OSABIStandalone: "Standalone (embedded) application",
}

// DecodeOSABI maps the EI_OSABI byte to an OSABI. Bytes without a name
// are kept as is and render as Unknown(n).
func DecodeOSABI(b byte) OSABI {
	return OSABI(b)
}

// Known reports whether a has a name
func (a OSABI) Known() bool {
	_, ok := osabiNames[a]
	return ok
}

func (a OSABI) String() string {
	if name, ok := osabiNames[a]; ok {
		return name
	}
	return unknown(uint64(a))
}

// FileType is the e_type field
type FileType uint16

const (
	TypeNone FileType = 0
	TypeRel  FileType = 1
	TypeExec FileType = 2
	TypeDyn  FileType = 3
	TypeCore FileType = 4

	TypeLoProc FileType = 0xff00
	TypeHiProc FileType = 0xffff
)

// DecodeFileType maps the e_type field to a FileType
func DecodeFileType(v uint16) FileType {
	return FileType(v)
}

// ProcessorSpecific reports whether t falls in [TypeLoProc, TypeHiProc]
func (t FileType) ProcessorSpecific() bool {
	return t >= TypeLoProc && t <= TypeHiProc
}

// Known reports whether t is a named type or processor-specific
func (t FileType) Known() bool {
	return t <= TypeCore || t.ProcessorSpecific()
}

func (t FileType) String() string {
	switch {
	case t == TypeNone:
		return "NONE (No file type)"
	case t == TypeRel:
		return "REL (Relocatable file)"
	case t == TypeExec:
		return "EXEC (Executable file)"
	case t == TypeDyn:
		return "DYN (Shared object file)"
	case t == TypeCore:
		return "CORE (Core file)"
	case t.ProcessorSpecific():
		return "Processor-specific"
	default:
		return "Unknown file type"
	}
}

func unknown(v uint64) string {
	return fmt.Sprintf("Unknown(%d)", v)
}
