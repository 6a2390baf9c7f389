package protocol

import (
	"errors"
	"io"
)

var (
	ErrBadFrame        = errors.New("bad frame")
	ErrPayloadTooLarge = errors.New("payload exceeds frame size")

	errShortFrame = errors.New("incomplete frame")
)

// EncodeFrame wraps payload in a frame with the given sequence number
func EncodeFrame(out OutputBuffer, seq uint8, payload []byte) error {
	if len(payload) > PayloadMax {
		return ErrPayloadTooLarge
	}

	cursor := out.CurPosition()
	out.Output([]byte{uint8(len(payload) + FrameLengthMin), FrameDest | seq&FrameSeqMask})
	out.Output(payload)

	crc := CRC16(out.DataSince(cursor))
	out.Output([]byte{
		uint8((crc & 0xFF00) >> 8),
		uint8(crc & 0xFF),
		FrameValueSync,
	})
	return nil
}

// FrameWriter frames messages onto a byte stream with a rolling sequence number.
// It is not safe for concurrent use.
type FrameWriter struct {
	w       io.Writer
	seq     uint8
	payload ScratchOutput
	frame   ScratchOutput
}

// NewFrameWriter creates a writer on w
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteMessage encodes m into one frame and writes it
func (fw *FrameWriter) WriteMessage(m Message) error {
	fw.payload.Reset()
	EncodeMessage(&fw.payload, m)

	fw.frame.Reset()
	if err := EncodeFrame(&fw.frame, fw.seq, fw.payload.Result()); err != nil {
		return err
	}
	fw.seq = (fw.seq + 1) & FrameSeqMask

	_, err := fw.w.Write(fw.frame.Result())
	return err
}

// FrameHandler receives the sequence number and payload of each valid frame.
// The payload aliases the input buffer and is only valid during the call.
type FrameHandler func(seq uint8, payload []byte) error

// Decoder extracts frames from a byte stream. After a corrupt frame it skips
// to the next sync byte and carries on.
type Decoder struct {
	synchronized bool
	handler      FrameHandler

	frames   uint32
	dropped  uint32
	rejected uint32
}

// NewDecoder creates a decoder delivering frames to handler
func NewDecoder(handler FrameHandler) *Decoder {
	return &Decoder{synchronized: true, handler: handler}
}

// Receive consumes every complete frame in input. A partial frame is left
// in the buffer for the next call.
func (d *Decoder) Receive(input InputBuffer) {
	data := input.Data()

	for len(data) > 0 {
		if !d.synchronized {
			syncPos := -1
			for i, b := range data {
				if b == FrameValueSync {
					syncPos = i
					break
				}
			}
			if syncPos < 0 {
				data = nil
				break
			}
			data = data[syncPos+1:]
			d.synchronized = true
			continue
		}

		if data[0] == FrameValueSync {
			data = data[1:]
			continue
		}

		frameLen, err := checkFrame(data)
		if err == errShortFrame {
			break
		}
		if err != nil {
			d.desync()
			continue
		}
		seq := data[FramePositionSeq]
		payload := data[FrameHeaderSize : frameLen-FrameTrailerSize]
		data = data[frameLen:]
		d.frames++
		d.dispatch(seq&FrameSeqMask, payload)
	}

	consumed := input.Available() - len(data)
	if consumed > 0 {
		input.Pop(consumed)
	}
}

// checkFrame validates the frame at the start of data and returns its length
func checkFrame(data []byte) (int, error) {
	if len(data) < FrameLengthMin {
		return 0, errShortFrame
	}

	frameLen := int(data[FramePositionLen])
	if frameLen < FrameLengthMin || frameLen > FrameLengthMax {
		return 0, ErrBadFrame
	}
	if data[FramePositionSeq]&^FrameSeqMask != FrameDest {
		return 0, ErrBadFrame
	}
	if len(data) < frameLen {
		return 0, errShortFrame
	}
	if data[frameLen-FrameTrailerSync] != FrameValueSync {
		return 0, ErrBadFrame
	}

	frameCRC := uint16(data[frameLen-FrameTrailerCRC])<<8 |
		uint16(data[frameLen-FrameTrailerCRC+1])
	if frameCRC != CRC16(data[:frameLen-FrameTrailerSize]) {
		return 0, ErrBadFrame
	}
	return frameLen, nil
}

func (d *Decoder) dispatch(seq uint8, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			d.rejected++
		}
	}()
	if d.handler != nil {
		if err := d.handler(seq, payload); err != nil {
			d.rejected++
		}
	}
}

func (d *Decoder) desync() {
	d.synchronized = false
	d.dropped++
}

// Frames returns the number of valid frames delivered
func (d *Decoder) Frames() uint32 {
	return d.frames
}

// Dropped returns the number of corrupt frames skipped
func (d *Decoder) Dropped() uint32 {
	return d.dropped
}

// HandlerErrors returns the number of frames the handler rejected
func (d *Decoder) HandlerErrors() uint32 {
	return d.rejected
}
