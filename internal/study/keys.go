package study

// Key is a keyboard key consumed by the study modes
type Key string

const (
	KeyArrowRight Key = "ArrowRight"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowUp    Key = "ArrowUp"
	KeySpace      Key = "Space"
	KeyEnter      Key = "Enter"
)

// keyHandler is implemented by every mode that accepts keyboard input.
// HandleKey reports whether the key was consumed, in which case the
// default action for it must be suppressed.
type keyHandler interface {
	HandleKey(k Key) bool
}
