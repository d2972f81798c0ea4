package templates

import (
	"strconv"
)

// itoa converts an int64 to a string, used for building URL paths in templ.
func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

func employeePDFPath(id int64) string {
	return "/employees/" + itoa(id) + "/pdf"
}

// optionLabel is the visible text of a select option. The empty value is
// the placeholder.
func optionLabel(value string) string {
	if value == "" {
		return "Select..."
	}
	return value
}
