package protocol

import "errors"

// Telemetry message ids
const (
	MsgRunStarted    = 1
	MsgProgress      = 2
	MsgRunFinished   = 3
	MsgTensionSample = 4
)

var ErrUnknownMessage = errors.New("unknown message id")

// Message is one telemetry record
type Message interface {
	ID() uint8
	encode(out OutputBuffer)
}

// RunStarted announces a job. TargetUnits is the operator's figure
// (metres or millihenries), Target the derived pulse or turn count.
type RunStarted struct {
	Mode        uint8
	Target      uint32
	TargetUnits uint32
}

// Progress reports a running job. Progress is in turns for copper and
// hundredths of a metre for thread.
type Progress struct {
	Mode     uint8
	Pulses   uint32
	Progress uint32
}

// RunFinished reports the terminal outcome of a job
type RunFinished struct {
	Mode     uint8
	Outcome  uint8
	Pulses   uint32
	Progress uint32
}

// TensionSample carries the reading that aborted a run
type TensionSample struct {
	Reading int32
}

func (RunStarted) ID() uint8    { return MsgRunStarted }
func (Progress) ID() uint8      { return MsgProgress }
func (RunFinished) ID() uint8   { return MsgRunFinished }
func (TensionSample) ID() uint8 { return MsgTensionSample }

func (m RunStarted) encode(out OutputBuffer) {
	EncodeVLQUint(out, uint32(m.Mode))
	EncodeVLQUint(out, m.Target)
	EncodeVLQUint(out, m.TargetUnits)
}

func (m Progress) encode(out OutputBuffer) {
	EncodeVLQUint(out, uint32(m.Mode))
	EncodeVLQUint(out, m.Pulses)
	EncodeVLQUint(out, m.Progress)
}

func (m RunFinished) encode(out OutputBuffer) {
	EncodeVLQUint(out, uint32(m.Mode))
	EncodeVLQUint(out, uint32(m.Outcome))
	EncodeVLQUint(out, m.Pulses)
	EncodeVLQUint(out, m.Progress)
}

func (m TensionSample) encode(out OutputBuffer) {
	EncodeVLQInt(out, m.Reading)
}

// EncodeMessage writes the message id followed by its fields
func EncodeMessage(out OutputBuffer, m Message) {
	EncodeVLQUint(out, uint32(m.ID()))
	m.encode(out)
}

// DecodeMessage parses one message payload
func DecodeMessage(payload []byte) (Message, error) {
	id, err := DecodeVLQUint(&payload)
	if err != nil {
		return nil, err
	}

	var f [4]uint32
	count := 0
	switch id {
	case MsgRunStarted, MsgProgress:
		count = 3
	case MsgRunFinished:
		count = 4
	case MsgTensionSample:
		reading, err := DecodeVLQInt(&payload)
		if err != nil {
			return nil, err
		}
		return TensionSample{Reading: reading}, nil
	default:
		return nil, ErrUnknownMessage
	}

	for i := 0; i < count; i++ {
		if f[i], err = DecodeVLQUint(&payload); err != nil {
			return nil, err
		}
	}

	switch id {
	case MsgRunStarted:
		return RunStarted{Mode: uint8(f[0]), Target: f[1], TargetUnits: f[2]}, nil
	case MsgProgress:
		return Progress{Mode: uint8(f[0]), Pulses: f[1], Progress: f[2]}, nil
	default:
		return RunFinished{Mode: uint8(f[0]), Outcome: uint8(f[1]), Pulses: f[2], Progress: f[3]}, nil
	}
}
