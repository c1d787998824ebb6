package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts for a y/N answer on the given reader. Anything other than
// "y"/"yes" declines.
func Confirm(r io.Reader, w io.Writer, prompt string) (bool, error) {
	fmt.Fprintf(w, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
