package protocol

import "errors"

var ErrBufferTooSmall = errors.New("truncated VLQ")

// EncodeVLQInt writes v most significant group first, seven bits per byte.
// Values in [-32, 96) take a single byte.
func EncodeVLQInt(output OutputBuffer, v int32) {
	if !(-(1<<26) <= v && v < (3<<26)) {
		output.Output([]byte{byte((v>>28)&0x7F) | 0x80})
	}
	if !(-(1<<19) <= v && v < (3<<19)) {
		output.Output([]byte{byte((v>>21)&0x7F) | 0x80})
	}
	if !(-(1<<12) <= v && v < (3<<12)) {
		output.Output([]byte{byte((v>>14)&0x7F) | 0x80})
	}
	if !(-(1<<5) <= v && v < (3<<5)) {
		output.Output([]byte{byte((v>>7)&0x7F) | 0x80})
	}
	output.Output([]byte{byte(v & 0x7F)})
}

// EncodeVLQUint writes the two's complement bits of v
func EncodeVLQUint(output OutputBuffer, v uint32) {
	EncodeVLQInt(output, int32(v))
}

// DecodeVLQInt reads one value and advances data past it
func DecodeVLQInt(data *[]byte) (int32, error) {
	if len(*data) == 0 {
		return 0, ErrBufferTooSmall
	}

	c := uint32((*data)[0])
	*data = (*data)[1:]

	v := c & 0x7F
	if (c & 0x60) == 0x60 {
		// Negative lead group
		v |= ^uint32(0x1F)
	}

	for c&0x80 != 0 {
		if len(*data) == 0 {
			return 0, ErrBufferTooSmall
		}
		c = uint32((*data)[0])
		*data = (*data)[1:]
		v = (v << 7) | (c & 0x7F)
	}

	return int32(v), nil
}

// DecodeVLQUint reads one value as unsigned
func DecodeVLQUint(data *[]byte) (uint32, error) {
	val, err := DecodeVLQInt(data)
	return uint32(val), err
}
