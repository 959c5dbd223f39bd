package domain

import "strings"

const HistoryCapacity = 100

// LivePointer is the history pointer value while editing the live buffer.
const LivePointer = -1

// Buffer holds the lines typed since the last run and a bounded history of
// executed buffers. Entries loaded from history are copies; editing the live
// buffer never touches a stored entry.
type Buffer struct {
	lines    []string
	history  [][]string
	pointer  int
	capacity int
}

func NewBuffer() *Buffer {
	return NewBufferWithCapacity(HistoryCapacity)
}

func NewBufferWithCapacity(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = HistoryCapacity
	}

	return &Buffer{
		pointer:  LivePointer,
		capacity: capacity,
	}
}

// AppendLine adds a line to the live buffer. When a history entry is being
// viewed the pointer returns to live first and leftHistory is true.
func (b *Buffer) AppendLine(line string) (leftHistory bool) {
	if b.pointer != LivePointer {
		leftHistory = true
		b.lines = nil
		b.pointer = LivePointer
	}

	b.lines = append(b.lines, line)
	return leftHistory
}

// Execute archives the live buffer and returns its text joined by newlines.
func (b *Buffer) Execute() (string, error) {
	if len(b.lines) == 0 {
		return "", ErrBufferEmpty
	}

	code := strings.Join(b.lines, "\n")

	if len(b.history) >= b.capacity {
		b.history = append(b.history[:0:0], b.history[len(b.history)-b.capacity+1:]...)
	}
	b.history = append(b.history, copyLines(b.lines))
	b.pointer = len(b.history) - 1
	b.lines = nil

	return code, nil
}

func (b *Buffer) Clear() {
	b.lines = nil
	b.pointer = LivePointer
}

func (b *Buffer) NavigatePrev() error {
	if len(b.history) == 0 {
		return ErrHistoryEmpty
	}

	switch {
	case b.pointer == LivePointer:
		b.pointer = len(b.history) - 1
	case b.pointer > 0:
		b.pointer--
	default:
		return ErrAlreadyOldest
	}

	b.lines = copyLines(b.history[b.pointer])
	return nil
}

// NavigateNext moves towards the newest entry. Stepping past the newest entry
// returns to an empty live buffer and reports backToLive.
func (b *Buffer) NavigateNext() (backToLive bool, err error) {
	if b.pointer == LivePointer {
		return false, ErrNotViewingHistory
	}

	if b.pointer < len(b.history)-1 {
		b.pointer++
		b.lines = copyLines(b.history[b.pointer])
		return false, nil
	}

	b.Clear()
	return true, nil
}

func (b *Buffer) LoadByIndex(oneBasedIndex int) error {
	if oneBasedIndex < 1 || oneBasedIndex > len(b.history) {
		return ErrHistoryIndexOutOfRange
	}

	b.pointer = oneBasedIndex - 1
	b.lines = copyLines(b.history[b.pointer])
	return nil
}

func (b *Buffer) ClearHistory() {
	b.history = nil
	b.Clear()
}

func (b *Buffer) Lines() []string {
	return copyLines(b.lines)
}

func (b *Buffer) Len() int {
	return len(b.lines)
}

func (b *Buffer) Pointer() int {
	return b.pointer
}

func (b *Buffer) ViewingHistory() bool {
	return b.pointer != LivePointer
}

func (b *Buffer) HistoryLen() int {
	return len(b.history)
}

func (b *Buffer) HistoryEntry(index int) ([]string, bool) {
	if index < 0 || index >= len(b.history) {
		return nil, false
	}

	return copyLines(b.history[index]), true
}

func copyLines(lines []string) []string {
	if lines == nil {
		return nil
	}

	copied := make([]string, len(lines))
	copy(copied, lines)
	return copied
}
