package synth

import "strings"

var fenceOpeners = []string{"```golang", "```go", "```"}

// StripFences removes a surrounding Markdown code fence from model output.
func StripFences(text string) string {
	code := strings.TrimSpace(text)
	for _, opener := range fenceOpeners {
		if strings.HasPrefix(code, opener) {
			code = code[len(opener):]
			break
		}
	}
	code = strings.TrimSuffix(strings.TrimRight(code, " \t\r\n"), "```")
	return strings.TrimSpace(code)
}
