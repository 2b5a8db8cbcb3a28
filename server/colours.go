package server

import "net/http"

// ANSI colours for the DEV route table and access lines.
const (
	colourRed     = "\033[31m"
	colourGreen   = "\033[32m"
	colourYellow  = "\033[33m"
	colourBlue    = "\033[34m"
	colourMagenta = "\033[35m"
	colourCyan    = "\033[36m"
	colourGray    = "\033[90m"
	colourReset   = "\033[0m"
)

var methodColours = map[string]string{
	http.MethodGet:     colourGreen,
	http.MethodPost:    colourBlue,
	http.MethodPut:     colourCyan,
	http.MethodDelete:  colourYellow,
	http.MethodPatch:   colourMagenta,
	http.MethodOptions: colourGray,
}

func methodColour(method string) string {
	if c, ok := methodColours[method]; ok {
		return c
	}
	return colourGray
}

// statusColour colours a response status by class.
func statusColour(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return colourRed
	case status >= http.StatusBadRequest:
		return colourYellow
	case status >= http.StatusMultipleChoices:
		return colourCyan
	default:
		return colourGreen
	}
}
