package elfheader

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// String renders h in readelf layout, without a trailing newline
func (h *Header) String() string {
	var b strings.Builder

	b.WriteString("ELF Header:\n")
	b.WriteString("  Magic:   ")
	for _, c := range h.Ident.Raw {
		fmt.Fprintf(&b, "%02x ", c)
	}
	b.WriteString("\n")

	line := func(label string, format string, args ...interface{}) {
		fmt.Fprintf(&b, "  %-35s"+format+"\n", append([]interface{}{label + ":"}, args...)...)
	}
	line("Class", "%s", h.Ident.Class)
	line("Data", "%s", h.Ident.Data)
	line("Version", "%s", h.Ident.Version)
	line("OS/ABI", "%s", h.Ident.OSABI)
	line("ABI Version", "%d", h.Ident.ABIVersion)
	line("Type", "%s", h.Type)
	line("Machine", "%d", h.Machine)
	line("Version", "%#x", h.Version)
	line("Entry point address", "%#x", h.Entry)
	line("Start of program headers", "%d (bytes into file)", h.ProgHdrOffset)
	line("Start of section headers", "%d (bytes into file)", h.SecHdrOffset)
	line("Flags", "%#x", h.Flags)
	line("Size of this header", "%d (bytes)", h.HeaderSize)
	line("Size of program headers", "%d (bytes)", h.ProgHdrEntrySize)
	line("Number of program headers", "%d", h.ProgHdrCount)
	line("Size of section headers", "%d (bytes)", h.SecHdrEntrySize)
	line("Number of section headers", "%d", h.SecHdrCount)
	line("Section header string table index", "%d", h.SecHdrStrIndex)

	return strings.TrimSuffix(b.String(), "\n")
}

// WriteText writes the text report followed by a single newline
func WriteText(w io.Writer, h *Header) error {
	_, err := io.WriteString(w, h.String()+"\n")
	return err
}

type namedValue struct {
	Value uint64 `json:"value"`
	Name  string `json:"name"`
}

type jsonHeader struct {
	Magic            string     `json:"magic"`
	Class            namedValue `json:"class"`
	Data             namedValue `json:"data"`
	IdentVersion     namedValue `json:"ident_version"`
	OSABI            namedValue `json:"os_abi"`
	ABIVersion       uint8      `json:"abi_version"`
	Type             namedValue `json:"type"`
	Machine          uint16     `json:"machine"`
	Version          uint32     `json:"version"`
	Entry            uint64     `json:"entry"`
	ProgHdrOffset    uint64     `json:"program_header_offset"`
	SecHdrOffset     uint64     `json:"section_header_offset"`
	Flags            uint32     `json:"flags"`
	HeaderSize       uint16     `json:"header_size"`
	ProgHdrEntrySize uint16     `json:"program_header_entry_size"`
	ProgHdrCount     uint16     `json:"program_header_count"`
	SecHdrEntrySize  uint16     `json:"section_header_entry_size"`
	SecHdrCount      uint16     `json:"section_header_count"`
	SecHdrStrIndex   uint16     `json:"section_header_string_index"`
}

// MarshalJSON encodes enumerations as {value, name} pairs
func (h *Header) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonHeader{
		Magic:            hex.EncodeToString(h.Ident.Raw[:]),
		Class:            namedValue{uint64(h.Ident.Class), h.Ident.Class.String()},
		Data:             namedValue{uint64(h.Ident.Data), h.Ident.Data.String()},
		IdentVersion:     namedValue{uint64(h.Ident.Version), h.Ident.Version.String()},
		OSABI:            namedValue{uint64(h.Ident.OSABI), h.Ident.OSABI.String()},
		ABIVersion:       h.Ident.ABIVersion,
		Type:             namedValue{uint64(h.Type), h.Type.String()},
		Machine:          h.Machine,
		Version:          h.Version,
		Entry:            h.Entry,
		ProgHdrOffset:    h.ProgHdrOffset,
		SecHdrOffset:     h.SecHdrOffset,
		Flags:            h.Flags,
		HeaderSize:       h.HeaderSize,
		ProgHdrEntrySize: h.ProgHdrEntrySize,
		ProgHdrCount:     h.ProgHdrCount,
		SecHdrEntrySize:  h.SecHdrEntrySize,
		SecHdrCount:      h.SecHdrCount,
		SecHdrStrIndex:   h.SecHdrStrIndex,
	})
}

// WriteJSON writes h as indented JSON
func WriteJSON(w io.Writer, h *Header) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(h)
}
