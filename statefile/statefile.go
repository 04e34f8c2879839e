// Package statefile reads and writes exported MT19937 states so they can be
// moved between processes and implementations.
//
// Two encodings are supported. Text is 625 decimal numbers, one per line: the
// 624 state words followed by the index, the layout of Python's
// random.getstate()[1]. Proto is the protobuf wire encoding of
//
//	message State {
//		repeated uint32 words = 1 [packed = true];
//		uint32 index = 2;
//	}
package statefile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/nozzle/mt19937"
)

// Format selects a state encoding.
type Format int

const (
	Text Format = iota
	Proto
)

const (
	fieldWords protowire.Number = 1
	fieldIndex protowire.Number = 2
)

// ParseFormat parses "text" or "proto".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "txt":
		return Text, nil
	case "proto", "pb", "protobuf":
		return Proto, nil
	}
	return 0, errors.Errorf("unknown state format %q", s)
}

func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case Proto:
		return "proto"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Encode writes s to w.
func Encode(w io.Writer, s mt19937.State, f Format) error {
	var b []byte
	switch f {
	case Text:
		b = MarshalText(s)
	case Proto:
		b = MarshalProto(s)
	default:
		return errors.Errorf("unknown state format %v", f)
	}
	_, err := w.Write(b)
	return errors.Wrap(err, "write state")
}

// Decode reads a state from r. The state is validated.
func Decode(r io.Reader, f Format) (mt19937.State, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return mt19937.State{}, errors.Wrap(err, "read state")
	}
	switch f {
	case Text:
		return UnmarshalText(b)
	case Proto:
		return UnmarshalProto(b)
	}
	return mt19937.State{}, errors.Errorf("unknown state format %v", f)
}

// Save writes s to the named file.
func Save(path string, s mt19937.State, f Format) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Encode(file, s, f); err != nil {
		file.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(file.Close(), "close %s", path)
}

// Load reads a state from the named file.
func Load(path string, f Format) (mt19937.State, error) {
	file, err := os.Open(path)
	if err != nil {
		return mt19937.State{}, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	s, err := Decode(file, f)
	if err != nil {
		return mt19937.State{}, errors.Wrapf(err, "load %s", path)
	}
	return s, nil
}

// MarshalText encodes s as 625 decimal lines.
func MarshalText(s mt19937.State) []byte {
	var buf bytes.Buffer
	buf.Grow((mt19937.N + 1) * 11)
	for _, w := range s.Words {
		buf.WriteString(strconv.FormatUint(uint64(w), 10))
		buf.WriteByte('\n')
	}
	buf.WriteString(strconv.Itoa(s.Index))
	buf.WriteByte('\n')
	return buf.Bytes()
}

// UnmarshalText decodes the text encoding. Blank lines are ignored; any other
// count than N+1 numbers is an mt19937.ErrInvalidStateLength.
func UnmarshalText(b []byte) (mt19937.State, error) {
	var values []uint32
	sc := bufio.NewScanner(bytes.NewReader(b))
	line := 0
	for sc.Scan() {
		line++
		field := strings.TrimSpace(sc.Text())
		if field == "" {
			continue
		}
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return mt19937.State{}, errors.Wrapf(err, "line %d", line)
		}
		values = append(values, uint32(v))
	}
	if err := sc.Err(); err != nil {
		return mt19937.State{}, errors.Wrap(err, "scan state")
	}

	if len(values) != mt19937.N+1 {
		return mt19937.State{}, fmt.Errorf("%w: got %d values, want %d words and an index",
			mt19937.ErrInvalidStateLength, len(values), mt19937.N)
	}
	return build(values[:mt19937.N], int(values[mt19937.N]))
}

// MarshalProto encodes s as a protobuf State message.
func MarshalProto(s mt19937.State) []byte {
	var packed []byte
	for _, w := range s.Words {
		packed = protowire.AppendVarint(packed, uint64(w))
	}

	b := protowire.AppendTag(nil, fieldWords, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	b = protowire.AppendTag(b, fieldIndex, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Index))
	return b
}

// UnmarshalProto decodes a protobuf State message. Both packed and unpacked
// words are accepted and unknown fields are skipped.
func UnmarshalProto(b []byte) (mt19937.State, error) {
	var words []uint32
	var index uint64
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return mt19937.State{}, errors.Wrap(protowire.ParseError(n), "state tag")
		}
		b = b[n:]

		switch {
		case num == fieldWords && typ == protowire.BytesType:
			packed, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return mt19937.State{}, errors.Wrap(protowire.ParseError(n), "state words")
			}
			b = b[n:]
			for len(packed) > 0 {
				v, n := protowire.ConsumeVarint(packed)
				if n < 0 {
					return mt19937.State{}, errors.Wrap(protowire.ParseError(n), "state word")
				}
				packed = packed[n:]
				if v > math.MaxUint32 {
					return mt19937.State{}, errors.Errorf("state word %d overflows uint32", v)
				}
				words = append(words, uint32(v))
			}
		case num == fieldWords && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return mt19937.State{}, errors.Wrap(protowire.ParseError(n), "state word")
			}
			b = b[n:]
			if v > math.MaxUint32 {
				return mt19937.State{}, errors.Errorf("state word %d overflows uint32", v)
			}
			words = append(words, uint32(v))
		case num == fieldIndex && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return mt19937.State{}, errors.Wrap(protowire.ParseError(n), "state index")
			}
			b = b[n:]
			index = v
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return mt19937.State{}, errors.Wrapf(protowire.ParseError(n), "field %d", num)
			}
			b = b[n:]
		}
	}

	if index > mt19937.N {
		return mt19937.State{}, fmt.Errorf("%w: %d", mt19937.ErrInvalidIndex, index)
	}
	return build(words, int(index))
}

func build(words []uint32, index int) (mt19937.State, error) {
	g, err := mt19937.FromSlice(words, index)
	if err != nil {
		return mt19937.State{}, err
	}
	return g.Export(), nil
}
