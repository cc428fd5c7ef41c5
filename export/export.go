// Package export writes simulation results to files and reads them back.
package export

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"

	"github.com/sarchlab/pagesim/replacement"
)

// Codec is the compression applied to an exported stream.
type Codec uint8

// Supported codecs.
const (
	CodecNone   Codec = 0
	CodecLZ4    Codec = 1
	CodecSnappy Codec = 2
)

// Stream header layout:
// [0-1]: Magic "PG"
// [2]: Format version
// [3]: Codec
const (
	headerSize    = 4
	formatVersion = 1
)

var magic = [2]byte{'P', 'G'}

var (
	// ErrUnknownCodec is returned for a codec that is not supported.
	ErrUnknownCodec = errors.New("unknown codec")

	// ErrBadHeader is returned when a stream does not start with a valid
	// header.
	ErrBadHeader = errors.New("bad export header")
)

var codecNames = map[Codec]string{
	CodecNone:   "none",
	CodecLZ4:    "lz4",
	CodecSnappy: "snappy",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Codec(%d)", uint8(c))
}

// Ext returns the file extension conventionally used for the codec.
func (c Codec) Ext() string {
	switch c {
	case CodecLZ4:
		return ".json.lz4"
	case CodecSnappy:
		return ".json.sz"
	default:
		return ".json"
	}
}

// ParseCodec converts a codec name into a Codec.
func ParseCodec(name string) (Codec, error) {
	for c, n := range codecNames {
		if strings.EqualFold(name, n) {
			return c, nil
		}
	}

	return CodecNone, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

// Encode writes results to w as JSON compressed with codec.
func Encode(w io.Writer, results []replacement.Result, codec Codec) error {
	if _, ok := codecNames[codec]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}

	header := [headerSize]byte{magic[0], magic[1], formatVersion, byte(codec)}
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var body io.WriteCloser

	switch codec {
	case CodecLZ4:
		body = lz4.NewWriter(w)
	case CodecSnappy:
		body = snappy.NewBufferedWriter(w)
	default:
		body = nopWriteCloser{w}
	}

	if err := json.NewEncoder(body).Encode(results); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	if err := body.Close(); err != nil {
		return fmt.Errorf("closing %s stream: %w", codec, err)
	}

	return nil
}

// Decode reads results written by Encode.
func Decode(r io.Reader) ([]replacement.Result, error) {
	br := bufio.NewReader(r)

	var header [headerSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}

	if header[0] != magic[0] || header[1] != magic[1] {
		return nil, fmt.Errorf("%w: magic %q", ErrBadHeader, header[:2])
	}

	if header[2] != formatVersion {
		return nil, fmt.Errorf("%w: version %d", ErrBadHeader, header[2])
	}

	var body io.Reader

	switch codec := Codec(header[3]); codec {
	case CodecNone:
		body = br
	case CodecLZ4:
		body = lz4.NewReader(br)
	case CodecSnappy:
		body = snappy.NewReader(br)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}

	var results []replacement.Result
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}

	return results, nil
}

// Fingerprint hashes the inputs of a run. Runs with equal inputs have equal
// fingerprints.
func Fingerprint(p replacement.Policy, frameCount int, seq []int) uint64 {
	return fingerprint(p.String(), frameCount, seq)
}

// FingerprintAll hashes the inputs of a comparison of every policy.
func FingerprintAll(frameCount int, seq []int) uint64 {
	return fingerprint("all", frameCount, seq)
}

// FingerprintSeeded hashes the inputs of a run together with the seed of its
// random source.
func FingerprintSeeded(
	p replacement.Policy,
	frameCount int,
	seq []int,
	seed uint64,
) uint64 {
	return fingerprint(p.String(), frameCount, seq, seed)
}

// fingerprint writes the sequence length ahead of the pages so that trailing
// values cannot be mistaken for requests.
func fingerprint(name string, frameCount int, seq []int, extra ...uint64) uint64 {
	d := xxhash.New()

	_, _ = d.WriteString(name)

	var buf [8]byte

	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	put(uint64(frameCount))
	put(uint64(len(seq)))

	for _, page := range seq {
		put(uint64(page))
	}

	for _, v := range extra {
		put(v)
	}

	return d.Sum64()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
