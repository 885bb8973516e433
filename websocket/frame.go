package websocket

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opBinary       byte = 0x2
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA
)

// MaxFramePayload caps a single frame's payload so one peer cannot exhaust
// memory.
const MaxFramePayload = 1 << 20

var (
	ErrFrameTooLarge  = errors.New("websocket: frame payload exceeds maximum allowed size")
	ErrUnmaskedFrame  = errors.New("websocket: client frame is not masked")
	ErrReservedOpcode = errors.New("websocket: reserved opcode")
)

type frame struct {
	fin     bool
	opcode  byte
	payload []byte
}

// readFrame reads one client-to-server frame. Client frames must be masked
// per RFC6455; the payload is returned unmasked.
func readFrame(br *bufio.Reader) (frame, error) {
	var head [2]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return frame{}, err
	}

	f := frame{
		fin:    head[0]&0x80 != 0,
		opcode: head[0] & 0x0F,
	}
	switch f.opcode {
	case opContinuation, opText, opBinary, opClose, opPing, opPong:
	default:
		return frame{}, ErrReservedOpcode
	}

	masked := head[1]&0x80 != 0
	length := uint64(head[1] & 0x7F)

	switch length {
	case 126:
		var ext [2]byte
		if _, err := io.ReadFull(br, ext[:]); err != nil {
			return frame{}, err
		}
		length = uint64(binary.BigEndian.Uint16(ext[:]))
	case 127:
		var ext [8]byte
		if _, err := io.ReadFull(br, ext[:]); err != nil {
			return frame{}, err
		}
		length = binary.BigEndian.Uint64(ext[:])
	}
	// Compare as uint64: a 64-bit length with the high bit set must be
	// rejected here, before it is ever narrowed or allocated.
	if length > MaxFramePayload {
		return frame{}, ErrFrameTooLarge
	}
	if !masked {
		return frame{}, ErrUnmaskedFrame
	}

	var maskKey [4]byte
	if _, err := io.ReadFull(br, maskKey[:]); err != nil {
		return frame{}, err
	}

	f.payload = make([]byte, length)
	if _, err := io.ReadFull(br, f.payload); err != nil {
		return frame{}, err
	}
	for i := range f.payload {
		f.payload[i] ^= maskKey[i%4]
	}
	return f, nil
}

// writeFrame writes one server-to-client frame. Server frames are not
// masked.
func writeFrame(w io.Writer, opcode byte, payload []byte) error {
	if len(payload) > MaxFramePayload {
		return ErrFrameTooLarge
	}

	head := make([]byte, 2, 10)
	head[0] = 0x80 | (opcode & 0x0F)

	switch {
	case len(payload) <= 125:
		head[1] = byte(len(payload))
	case len(payload) <= 0xFFFF:
		head[1] = 126
		head = binary.BigEndian.AppendUint16(head, uint16(len(payload)))
	default:
		head[1] = 127
		head = binary.BigEndian.AppendUint64(head, uint64(len(payload)))
	}

	if _, err := w.Write(head); err != nil {
		return err
	}
	if len(payload) == 0 {
		// Skip the zero-length write: it is a no-op on real sockets but
		// blocks forever on writers like net.Pipe that rendezvous with a
		// reader even for empty writes.
		return nil
	}
	_, err := w.Write(payload)
	return err
}
