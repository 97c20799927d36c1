package games

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Token is a scraped scalar that may arrive as a JSON string or number.
type Token struct {
	Text    string
	Num     int
	Numeric bool
}

// StringToken wraps a scraped string.
func StringToken(s string) Token { return Token{Text: s} }

// IntToken wraps a numeric value.
func IntToken(n int) Token { return Token{Num: n, Numeric: true} }

var amountStripper = strings.NewReplacer("$", "", ",", "", "D", "", ":", "", " ", "")

// Int coerces the token to a signed integer. Currency symbols, thousands
// separators and stray Daily Double markup are removed before parsing.
func (t Token) Int() int {
	if t.Numeric {
		return t.Num
	}
	return LeadingInt(amountStripper.Replace(t.Text))
}

// IntPtr is Int for optional tokens; nil and empty tokens yield nil.
func (t *Token) IntPtr() *int {
	if t == nil || t.Empty() {
		return nil
	}
	n := t.Int()
	return &n
}

// Empty reports whether the token carried no value.
func (t Token) Empty() bool {
	return !t.Numeric && t.Text == ""
}

// Parseable reports whether Int found digits to parse.
func (t Token) Parseable() bool {
	if t.Numeric {
		return true
	}
	_, ok := leadingInt(amountStripper.Replace(t.Text))
	return ok
}

func (t Token) String() string {
	if t.Numeric {
		return strconv.Itoa(t.Num)
	}
	return t.Text
}

func (t *Token) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = Token{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Token{Text: s}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("token %s: %w", data, err)
	}
	*t = Token{Num: int(f), Numeric: true}
	return nil
}

func (t Token) MarshalJSON() ([]byte, error) {
	if t.Numeric {
		return json.Marshal(t.Num)
	}
	return json.Marshal(t.Text)
}

// LeadingInt parses an optional sign followed by decimal digits at the start
// of s, ignoring leading whitespace and any trailing text. It returns 0 when
// no digits are found or the number does not fit in an int.
func LeadingInt(s string) int {
	n, _ := leadingInt(s)
	return n
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
