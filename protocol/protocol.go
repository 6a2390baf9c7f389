// Package protocol implements the winder telemetry wire format: VLQ encoded
// messages carried in length-prefixed, CRC-checked frames on a byte stream.
package protocol

// Version of the telemetry format
const Version = "1.0.0"

// Frame layout: [len][0x10|seq][payload...][crc hi][crc lo][0x7E]
const (
	MessageMax = 512 // Scratch output capacity

	FrameHeaderSize  = 2
	FrameTrailerSize = 3
	FrameLengthMin   = FrameHeaderSize + FrameTrailerSize
	FrameLengthMax   = 64
	PayloadMax       = FrameLengthMax - FrameLengthMin

	FramePositionLen = 0
	FramePositionSeq = 1
	FrameTrailerCRC  = 3
	FrameTrailerSync = 1

	FrameValueSync = 0x7E
	FrameDest      = 0x10

	FrameSeqMask = 0x0F
)
