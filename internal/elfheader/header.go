// Package elfheader decodes and renders the fixed-size header of 64-bit ELF files.
package elfheader

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// IdentSize is the length of the e_ident identification block
	IdentSize = 16
	// HeaderSize is the length of an Elf64_Ehdr
	HeaderSize = 64
)

// Magic is the signature every ELF file starts with
var Magic = [4]byte{0x7f, 'E', 'L', 'F'}

var (
	// ErrTruncatedInput is returned when fewer than HeaderSize bytes are available
	ErrTruncatedInput = errors.New("Not an ELF file: truncated header")
	// ErrNotELF is returned when the magic signature does not match
	ErrNotELF = errors.New("Not an ELF file")
	// ErrFileUnavailable classifies open and read failures of the input file
	ErrFileUnavailable = errors.New("file unavailable")
)

// FileError records an OS-level failure while accessing the input file
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFileUnavailable) match any FileError
func (e *FileError) Is(target error) bool {
	return target == ErrFileUnavailable
}

// Ident is the decoded identification block
type Ident struct {
	Raw        [IdentSize]byte
	Class      Class
	Data       DataEncoding
	Version    IdentVersion
	OSABI      OSABI
	ABIVersion uint8
}

// Header is a decoded Elf64_Ehdr. It holds copies of every field and no
// reference to the buffer it was decoded from.
type Header struct {
	Ident            Ident
	Type             FileType
	Machine          uint16
	Version          uint32
	Entry            uint64
	ProgHdrOffset    uint64
	SecHdrOffset     uint64
	Flags            uint32
	HeaderSize       uint16
	ProgHdrEntrySize uint16
	ProgHdrCount     uint16
	SecHdrEntrySize  uint16
	SecHdrCount      uint16
	SecHdrStrIndex   uint16
}

// ByteOrder returns the byte order used for the multi-byte fields: the one
// declared in the identification block, or the host order when the
// declaration is missing or unrecognized.
func (id *Ident) ByteOrder() binary.ByteOrder {
	switch id.Data {
	case DataLSB:
		return binary.LittleEndian
	case DataMSB:
		return binary.BigEndian
	default:
		return binary.NativeEndian
	}
}

// Parse validates buf and decodes its first HeaderSize bytes.
// Bytes past HeaderSize are ignored.
func Parse(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrTruncatedInput, HeaderSize, len(buf))
	}
	if !bytes.Equal(buf[:4], Magic[:]) {
		return nil, ErrNotELF
	}

	h := &Header{}
	copy(h.Ident.Raw[:], buf[:IdentSize])
	h.Ident.Class = DecodeClass(buf[4])
	h.Ident.Data = DecodeDataEncoding(buf[5])
	h.Ident.Version = DecodeIdentVersion(buf[6])
	h.Ident.OSABI = DecodeOSABI(buf[7])
	h.Ident.ABIVersion = buf[8]

	bo := h.Ident.ByteOrder()
	h.Type = DecodeFileType(bo.Uint16(buf[16:18]))
	h.Machine = bo.Uint16(buf[18:20])
	h.Version = bo.Uint32(buf[20:24])
	h.Entry = bo.Uint64(buf[24:32])
	h.ProgHdrOffset = bo.Uint64(buf[32:40])
	h.SecHdrOffset = bo.Uint64(buf[40:48])
	h.Flags = bo.Uint32(buf[48:52])
	h.HeaderSize = bo.Uint16(buf[52:54])
	h.ProgHdrEntrySize = bo.Uint16(buf[54:56])
	h.ProgHdrCount = bo.Uint16(buf[56:58])
	h.SecHdrEntrySize = bo.Uint16(buf[58:60])
	h.SecHdrCount = bo.Uint16(buf[60:62])
	h.SecHdrStrIndex = bo.Uint16(buf[62:64])

	return h, nil
}

// Decode reads exactly HeaderSize bytes from r and parses them.
// A short read is reported as ErrTruncatedInput.
func Decode(r io.Reader) (*Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Parse(buf[:n])
		}
		return nil, err
	}
	return Parse(buf)
}

// ReadFile opens path, decodes its header and closes it
func ReadFile(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: unwrapPathError(err)}
	}
	defer f.Close()

	h, err := Decode(f)
	if err != nil {
		if errors.Is(err, ErrTruncatedInput) || errors.Is(err, ErrNotELF) {
			return nil, err
		}
		return nil, &FileError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	return h, nil
}

func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
