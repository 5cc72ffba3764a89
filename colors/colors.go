package colors

import "github.com/fatih/color"

var (
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
)

// Status colors an HTTP status code by class
func Status(code int) string {
	switch {
	case code >= 500:
		return Red(code)
	case code >= 400:
		return Yellow(code)
	case code >= 300:
		return Cyan(code)
	default:
		return Green(code)
	}
}
