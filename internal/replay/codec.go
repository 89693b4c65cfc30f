package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"combdiag/internal/capture"
	"combdiag/internal/diag"
)

// SchemaVersion is bumped whenever Payload changes shape.
const SchemaVersion uint16 = 1

// Ext is the file extension of replay files.
const Ext = ".ctx"

// ErrSchema is returned for payloads written by an incompatible version.
var ErrSchema = errors.New("replay: unsupported schema version")

// ErrInvalid is returned for payloads whose captures break the capture
// contract.
var ErrInvalid = errors.New("replay: invalid context")

// Payload is the serialized form of a diag.Error.
type Payload struct {
	Schema  uint16
	Message string
	Input   string
	// Origin is the file the error was captured in. It is informational;
	// decoders prefer the path of their own call site.
	Origin  string
	Context *capture.FunctionContext
}

func payloadOf(e *diag.Error) *Payload {
	return &Payload{
		Schema:  SchemaVersion,
		Message: e.Message(),
		Input:   e.Input(),
		Origin:  e.File(),
		Context: e.Context(),
	}
}

// Encode writes e to w.
func Encode(w io.Writer, e *diag.Error) error {
	if e == nil {
		return errors.New("replay: nil error")
	}
	return msgpack.NewEncoder(w).Encode(payloadOf(e))
}

// Marshal returns the encoded form of e.
func Marshal(e *diag.Error) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePayload reads a raw payload and checks its schema and captures.
func DecodePayload(r io.Reader) (*Payload, error) {
	var p Payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if p.Schema != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrSchema, p.Schema)
	}
	if err := p.Context.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &p, nil
}

// Decode reads an Error from r. The file is re-derived: callSite wins when
// non-empty, otherwise the recorded origin is used.
func Decode(r io.Reader, callSite string) (*diag.Error, error) {
	p, err := DecodePayload(r)
	if err != nil {
		return nil, err
	}
	file := callSite
	if file == "" {
		file = p.Origin
	}
	return diag.Rebuild(p.Message, p.Input, p.Context, file), nil
}

// Unmarshal decodes data produced by Marshal.
func Unmarshal(data []byte, callSite string) (*diag.Error, error) {
	return Decode(bytes.NewReader(data), callSite)
}

// EncodeContext writes a bare FunctionContext to w.
func EncodeContext(w io.Writer, fc *capture.FunctionContext) error {
	return msgpack.NewEncoder(w).Encode(fc)
}

// DecodeContext reads a FunctionContext written by EncodeContext.
func DecodeContext(r io.Reader) (*capture.FunctionContext, error) {
	var fc capture.FunctionContext
	if err := msgpack.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("replay: decode context: %w", err)
	}
	if err := fc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return &fc, nil
}

// WriteFile stores e at path, replacing any existing file atomically.
func WriteFile(path string, e *diag.Error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp) //nolint:errcheck // gone after a successful rename

	if err := Encode(f, e); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadFile loads an Error stored by WriteFile.
func ReadFile(path, callSite string) (*diag.Error, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	e, err := Decode(f, callSite)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return e, nil
}
