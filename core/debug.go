package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// RunEvent captures a winding run event for post-mortem analysis
type RunEvent struct {
	EventType uint8  // Event type code
	Mode      uint8  // Winding mode code
	Pulses    uint32 // Pulse count at event
	Value     uint32 // Context-dependent value
}

// Event type codes
const (
	EvtRunStart    = 1 // Run entered Running
	EvtProgress    = 2 // Progress line redrawn
	EvtTension     = 3 // Tension over limit
	EvtStopped     = 4 // Operator stop
	EvtCompleted   = 5 // Target reached
	EvtDisplayFail = 6 // Display flush failed
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]RunEvent
	eventRingHead uint8 // Next write position

	// Async debug output channel
	debugChan chan string
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// InitAsyncDebug starts the async debug output goroutine
// Call this from main() after SetDebugWriter
func InitAsyncDebug() {
	debugChan = make(chan string, 16) // Buffer 16 messages
	go debugOutputWorker()
}

// debugOutputWorker runs in background, drains debug channel
func debugOutputWorker() {
	for msg := range debugChan {
		if debugPrintln != nil {
			debugPrintln(msg)
		}
	}
}

// DebugPrintln writes a debug message using the platform-specific writer
// Blocks if debug is enabled (use DebugAsync for non-blocking)
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// DebugAsync queues a debug message for async output (non-blocking)
// Returns immediately even if channel is full (drops message)
func DebugAsync(msg string) {
	if !debugEnabled || debugChan == nil {
		return
	}
	select {
	case debugChan <- msg:
	default:
		// Channel full, drop message (non-blocking)
	}
}

// RecordEvent captures a run event in the ring buffer
func RecordEvent(eventType, mode uint8, pulses, value uint32) {
	idx := eventRingHead
	eventRing[idx] = RunEvent{
		EventType: eventType,
		Mode:      mode,
		Pulses:    pulses,
		Value:     value,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the recorded events from oldest to newest
func Events() []RunEvent {
	out := make([]RunEvent, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// DumpEvents outputs the event ring buffer through the debug writer
func DumpEvents() {
	if !debugEnabled || debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Run Event Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + eventName(evt.EventType) +
			" mode=" + Itoa(int(evt.Mode)) +
			" pulses=" + Utoa(evt.Pulses) +
			" v=" + Utoa(evt.Value))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

func eventName(t uint8) string {
	switch t {
	case EvtRunStart:
		return "RUN_START"
	case EvtProgress:
		return "PROGRESS"
	case EvtTension:
		return "TENSION!"
	case EvtStopped:
		return "STOPPED"
	case EvtCompleted:
		return "COMPLETED"
	case EvtDisplayFail:
		return "DISPLAY_FAIL"
	default:
		return "UNKNOWN"
	}
}

// ClearEvents clears the event buffer
func ClearEvents() {
	for i := range eventRing {
		eventRing[i] = RunEvent{}
	}
	eventRingHead = 0
}
