package pingpong

import "fmt"

// Direction is the paddle steering intent.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Key returns the key event that selects this direction.
func (d Direction) Key() KeyEvent {
	switch d {
	case DirectionLeft:
		return LeftPressed
	case DirectionRight:
		return RightPressed
	default:
		return StopPressed
	}
}

// KeyEvent is a key transition delivered by the host.
type KeyEvent int

const (
	KeyNone KeyEvent = iota
	LeftPressed
	LeftReleased
	RightPressed
	RightReleased
	StopPressed // Explicit stop key; terminals may not report releases
)

var keyEventNames = map[KeyEvent]string{
	KeyNone:       "none",
	LeftPressed:   "left_down",
	LeftReleased:  "left_up",
	RightPressed:  "right_down",
	RightReleased: "right_up",
	StopPressed:   "stop",
}

// Direction returns the paddle direction the event selects.
func (k KeyEvent) Direction() Direction {
	switch k {
	case LeftPressed:
		return DirectionLeft
	case RightPressed:
		return DirectionRight
	default:
		return DirectionNone
	}
}

// String returns the stable name used in recordings.
func (k KeyEvent) String() string {
	if name, ok := keyEventNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKeyEvent is the inverse of KeyEvent.String.
func ParseKeyEvent(s string) (KeyEvent, error) {
	for k, name := range keyEventNames {
		if name == s {
			return k, nil
		}
	}
	return KeyNone, fmt.Errorf("pingpong: unknown key event %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k KeyEvent) MarshalText() ([]byte, error) {
	if _, ok := keyEventNames[k]; !ok {
		return nil, fmt.Errorf("pingpong: cannot marshal key event %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *KeyEvent) UnmarshalText(text []byte) error {
	parsed, err := ParseKeyEvent(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
