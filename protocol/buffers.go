package protocol

import "io"

// InputBuffer is a byte queue the decoder consumes from the front
type InputBuffer interface {
	Data() []byte
	Available() int
	Pop(n int)
}

// OutputBuffer is an append-only byte sink. DataSince lets the frame encoder
// checksum what it has written.
type OutputBuffer interface {
	Output(data []byte)
	CurPosition() int
	DataSince(pos int) []byte
}

// SliceInputBuffer decodes a complete capture held in memory
type SliceInputBuffer struct {
	data []byte
}

// NewSliceInputBuffer wraps data without copying it
func NewSliceInputBuffer(data []byte) *SliceInputBuffer {
	return &SliceInputBuffer{data: data}
}

func (s *SliceInputBuffer) Data() []byte   { return s.data }
func (s *SliceInputBuffer) Available() int { return len(s.data) }

func (s *SliceInputBuffer) Pop(n int) {
	s.data = s.data[min(n, len(s.data)):]
}

// ScratchOutput collects one frame or payload. Writes past MessageMax are
// truncated. The zero value is ready to use.
type ScratchOutput struct {
	buf [MessageMax]byte
	pos int
}

// NewScratchOutput returns an empty buffer
func NewScratchOutput() *ScratchOutput {
	return &ScratchOutput{}
}

func (s *ScratchOutput) Output(data []byte) {
	s.pos += copy(s.buf[s.pos:], data)
}

func (s *ScratchOutput) CurPosition() int {
	return s.pos
}

func (s *ScratchOutput) DataSince(pos int) []byte {
	if pos > s.pos {
		return nil
	}
	return s.buf[pos:s.pos]
}

// Result returns everything written since the last Reset
func (s *ScratchOutput) Result() []byte {
	return s.buf[:s.pos]
}

// Reset empties the buffer
func (s *ScratchOutput) Reset() {
	s.pos = 0
}

// FifoBuffer queues serial bytes for the frame decoder. Consumed bytes are
// reclaimed by sliding the unread tail to the front, so Data is always one
// contiguous slice of the backing array.
type FifoBuffer struct {
	buf   []byte
	start int
	end   int
}

// NewFifoBuffer creates a queue holding up to capacity bytes
func NewFifoBuffer(capacity int) *FifoBuffer {
	return &FifoBuffer{buf: make([]byte, capacity)}
}

func (f *FifoBuffer) compact() {
	if f.start == 0 {
		return
	}
	f.end = copy(f.buf, f.buf[f.start:f.end])
	f.start = 0
}

// Write appends as much of data as fits and returns the count
func (f *FifoBuffer) Write(data []byte) int {
	if len(data) > len(f.buf)-f.end {
		f.compact()
	}
	n := copy(f.buf[f.end:], data)
	f.end += n
	return n
}

// ReadFrom performs one Read from r straight into the free space.
// A full queue is not read from.
func (f *FifoBuffer) ReadFrom(r io.Reader) (int, error) {
	f.compact()
	if f.end == len(f.buf) {
		return 0, nil
	}
	n, err := r.Read(f.buf[f.end:])
	f.end += n
	return n, err
}

// Available returns the number of queued bytes
func (f *FifoBuffer) Available() int {
	return f.end - f.start
}

// Data returns the queued bytes. The slice is valid until the next Write.
func (f *FifoBuffer) Data() []byte {
	return f.buf[f.start:f.end]
}

// Pop drops n bytes from the front
func (f *FifoBuffer) Pop(n int) {
	f.start += min(n, f.Available())
	if f.start == f.end {
		f.start, f.end = 0, 0
	}
}
