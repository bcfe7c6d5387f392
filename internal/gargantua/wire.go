package gargantua

import "encoding/binary"

// byteWriter accumulates a length-prefixed structured encoding: a
// leading tag byte followed by the operation's fields in the exact
// order §4.F lists them (spec §6 "Instruction encoding").
type byteWriter struct {
	buf []byte
}

func (w *byteWriter) fixed(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *byteWriter) u64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *byteWriter) bytes(b []byte) {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(b)))
	w.buf = append(w.buf, lenBuf[:]...)
	w.buf = append(w.buf, b...)
}

type byteReader struct {
	buf []byte
	off int
}

func (r *byteReader) fixed(n int) ([]byte, error) {
	if r.off+n > len(r.buf) {
		return nil, newError(InvalidInstruction, "payload underflow")
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *byteReader) u64() (uint64, error) {
	b, err := r.fixed(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *byteReader) bytes() ([]byte, error) {
	lenBuf, err := r.fixed(4)
	if err != nil {
		return nil, err
	}
	n := int(binary.LittleEndian.Uint32(lenBuf))
	return r.fixed(n)
}

func (r *byteReader) point32() ([32]byte, error) {
	var out [32]byte
	b, err := r.fixed(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func (r *byteReader) atEnd() bool {
	return r.off == len(r.buf)
}
