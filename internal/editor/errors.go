package editor

import "errors"

var (
	// ErrQuit is returned from HandleKey when the user asked to quit.
	ErrQuit = errors.New("quit")

	// ErrUnknownCommand is returned by a CommandExecutor for ex commands
	// it does not implement.
	ErrUnknownCommand = errors.New("not an editor command")
)

// notice is a failure the user is told about in the message line. Like
// any error it abandons the pending command and macro playback, but it is
// not returned from HandleKey.
type notice string

func (n notice) Error() string { return string(n) }

const (
	errMarkNotSet     notice = "E20: Mark not set"
	errMarkInvalid    notice = "E19: Mark has invalid line number"
	errNoPrevPattern  notice = "E35: No previous regular expression"
	errNoStringUnder  notice = "E348: No string under cursor"
	errNoFileName     notice = "E32: No file name"
	errNoPrevRegister notice = "E748: No previously used register"
	errNoPrevCommand  notice = "E30: No previous command line"
	errInvalidRange   notice = "E16: Invalid range"
)
