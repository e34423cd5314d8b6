package ymaze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PromptPath asks for a video path on r. An empty answer or EOF means the
// user cancelled and yields "". Quotes added by drag and drop are removed.
func PromptPath(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprint(w, "🎞️  Video file (empty to cancel): ")

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read path: %w", err)
	}
	return cleanPath(line), nil
}

func cleanPath(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			s = strings.TrimSpace(s[1 : len(s)-1])
		}
	}
	return s
}
