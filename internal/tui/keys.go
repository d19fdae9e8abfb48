package tui

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/thruflo/abloop/internal/hotkey"
)

// Key represents a keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCtrlC
	KeyCtrlD
	KeyRune // Regular character
)

var keyNames = map[Key]string{
	KeyEscape:    "esc",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyCtrlC:     "ctrl+c",
	KeyCtrlD:     "ctrl+d",
}

// KeyEvent represents a key press event.
type KeyEvent struct {
	Key  Key
	Rune rune // Only valid when Key == KeyRune
}

// Trigger returns the trigger name of the key: the character itself for
// printable keys, "space" for the space bar, and a lower-case name such as
// "left" or "enter" otherwise. Unknown keys have no trigger.
func (ev KeyEvent) Trigger() hotkey.Trigger {
	if ev.Key == KeyRune {
		if ev.Rune == ' ' {
			return "space"
		}
		return hotkey.Trigger(string(ev.Rune))
	}
	return hotkey.Trigger(keyNames[ev.Key])
}

// IsQuit reports whether the key ends the session.
func (ev KeyEvent) IsQuit() bool {
	return ev.Key == KeyCtrlC || ev.Key == KeyCtrlD
}

// NormalizeTrigger maps a configured key to the name KeyEvent.Trigger
// produces. Named keys are case-insensitive; single characters are kept as
// they are, so "A" and "a" are different triggers. It returns "" for keys
// the terminal cannot report.
func NormalizeTrigger(t hotkey.Trigger) hotkey.Trigger {
	s := string(t)
	if s == " " {
		return "space"
	}
	if utf8.RuneCountInString(s) == 1 {
		return t
	}

	lower := strings.ToLower(strings.TrimSpace(s))
	switch lower {
	case "space":
		return "space"
	case "escape":
		lower = "esc"
	case "return":
		lower = "enter"
	}
	for _, name := range keyNames {
		if name == lower {
			return hotkey.Trigger(lower)
		}
	}
	return ""
}

// KeyReader reads keyboard input from a raw terminal.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader from the given io.Reader.
// The reader should be a raw terminal input (e.g., os.Stdin after term.MakeRaw).
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{
		reader: bufio.NewReaderSize(r, 64),
	}
}

// ReadKey reads a single key event from the input.
// This method blocks until a key is pressed.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch b {
	case 0x03:
		return KeyEvent{Key: KeyCtrlC}, nil
	case 0x04:
		return KeyEvent{Key: KeyCtrlD}, nil
	case 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case 0x0D, 0x0A:
		return KeyEvent{Key: KeyEnter}, nil
	case 0x7F, 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case 0x1B:
		return k.readEscapeSequence()
	}

	if b >= 0x20 && b < 0x7F {
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	}
	if b >= 0xC0 {
		return k.readUTF8(b)
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

// readEscapeSequence handles a lone escape and the CSI/SS3 arrow sequences.
// Terminals send a whole sequence in one write, so a lone escape is one with
// nothing buffered after it.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		_ = k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err = k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}

	switch b {
	case 'A':
		return KeyEvent{Key: KeyUp}, nil
	case 'B':
		return KeyEvent{Key: KeyDown}, nil
	case 'C':
		return KeyEvent{Key: KeyRight}, nil
	case 'D':
		return KeyEvent{Key: KeyLeft}, nil
	}

	// Unknown sequence: consume up to its final byte.
	for k.reader.Buffered() > 0 && !isFinalByte(b) {
		b, _ = k.reader.ReadByte()
	}
	return KeyEvent{Key: KeyUnknown}, nil
}

func isFinalByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~'
}

// readUTF8 reads a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var n int
	switch {
	case first&0xE0 == 0xC0:
		n = 2
	case first&0xF0 == 0xE0:
		n = 3
	case first&0xF8 == 0xF0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	buf := make([]byte, n)
	buf[0] = first
	if _, err := io.ReadFull(k.reader, buf[1:]); err != nil {
		return KeyEvent{Key: KeyUnknown}, err
	}

	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}
