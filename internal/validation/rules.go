// Package validation holds the per-field rules of the new-employee form.
// The same tables serve the headless client form and the intake server.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/csg33k/employee-intake/internal/domain"
)

// DefaultMessage is shown for a required field that has no specific message.
const DefaultMessage = "This field is required."

// Validator binds a field name to the pattern its raw value must match.
type Validator struct {
	Field   string
	Pattern *regexp.Regexp
}

// Valid reports whether value satisfies the validator.
func (v Validator) Valid(value string) bool { return v.Pattern.MatchString(value) }

// Message binds a field name to its user-facing error text.
type Message struct {
	Field string
	Text  string
}

// spaceChars lists the characters a browser's \s matches: ECMAScript
// WhiteSpace and LineTerminator. RE2's \s covers only ASCII.
const spaceChars = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

const space = `[` + spaceChars + `]`

var (
	personFirst = regexp.MustCompile(`^[A-Za-z]+(?:` + space + `[A-Za-z.]+)?$`)
	personLast  = regexp.MustCompile(`^[A-Za-z]+(?:` + space + `(?:Jr\.|Sr\.|III|IV|V|VI|[A-Za-z]+))?$`)
	lettersOnly = regexp.MustCompile(`^[A-Za-z` + spaceChars + `]+$`)
)

// Validators is the fixed validator registry.
var Validators = []Validator{
	{Field: "first_name", Pattern: personFirst},
	{Field: "last_name", Pattern: personLast},
	{Field: "email", Pattern: regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+$`)},
	{Field: "phone", Pattern: regexp.MustCompile(`^\+?1?` + space + `?\(?\d{3}\)?[-` + spaceChars + `]?\d{3}[-` + spaceChars + `]?\d{4}$`)},
	{Field: "address", Pattern: regexp.MustCompile(`^\d+` + space + `[A-Za-z` + spaceChars + `]+(?:,` + space + `[A-Za-z` + spaceChars + `]+)*$`)},
	{Field: "city", Pattern: lettersOnly},
	{Field: "state", Pattern: lettersOnly},
	{Field: "zipcode", Pattern: regexp.MustCompile(`^\d{5}(-\d{4})?$`)},
}

// Messages is the fixed error message registry.
var Messages = []Message{
	{Field: "email", Text: "Invalid email format. Example: name@example.com"},
	{Field: "phone", Text: "Invalid phone number. Format: +1 234-567-8900 or (234) 567-8900"},
	{Field: "first_name", Text: "Please enter a valid first name. If applicable, include middle initial or middle name. Example: John E."},
	{Field: "last_name", Text: "Please enter a valid last name. If applicable, include suffixes (Jr., Sr., III). Example: Doe Jr."},
	{Field: "address", Text: "Invalid address format. Include house number and street name. Example: 123 Main St"},
	{Field: "city", Text: "Please enter a valid city name. Only letters and spaces are allowed. Example: New York"},
	{Field: "state", Text: "Please enter a valid state name or abbreviation. Example: NY for New York"},
	{Field: "zipcode", Text: "Invalid ZIP code format. Use 5 digits or 5+4 format. Example: 12345 or 12345-6789"},
}

var (
	validatorIndex = make(map[string]Validator, len(Validators))
	messageIndex   = make(map[string]string, len(Messages))
)

func init() {
	for _, v := range Validators {
		validatorIndex[v.Field] = v
	}
	for _, m := range Messages {
		messageIndex[m.Field] = m.Text
	}
}

// Lookup returns the validator registered for field, if any.
func Lookup(field string) (Validator, bool) {
	v, ok := validatorIndex[field]
	return v, ok
}

// MessageFor returns the error text for field, or DefaultMessage.
func MessageFor(field string) string {
	if msg, ok := messageIndex[field]; ok {
		return msg
	}
	return DefaultMessage
}

// Verdict is the outcome of checking one field.
type Verdict struct {
	Field   string
	Valid   bool
	Message string // empty when Valid
}

// isSpace matches the characters a browser strips when trimming.
func isSpace(r rune) bool {
	return r == '\ufeff' || (r != '\u0085' && unicode.IsSpace(r))
}

// Check applies the required rule, then the field's validator.
// The required rule looks at the trimmed value; validators see the raw one.
func Check(f domain.Field) Verdict {
	if f.Required && strings.TrimFunc(f.Value, isSpace) == "" {
		return Verdict{Field: f.Name, Message: MessageFor(f.Name)}
	}
	if v, ok := Lookup(f.Name); ok && !v.Valid(f.Value) {
		return Verdict{Field: f.Name, Message: MessageFor(f.Name)}
	}
	return Verdict{Field: f.Name, Valid: true}
}

// CheckAll checks every field and reports whether all of them passed.
// Every field is checked even after the first failure.
func CheckAll(fields []domain.Field) ([]Verdict, bool) {
	verdicts := make([]Verdict, 0, len(fields))
	ok := true
	for _, f := range fields {
		v := Check(f)
		ok = ok && v.Valid
		verdicts = append(verdicts, v)
	}
	return verdicts, ok
}

// Errors flattens the failing verdicts into a field → message map.
func Errors(verdicts []Verdict) map[string]string {
	errs := make(map[string]string)
	for _, v := range verdicts {
		if !v.Valid {
			errs[v.Field] = v.Message
		}
	}
	return errs
}
