package commands

import (
	"bufio"
	"io"
	"strings"
)

// Provider supplies operator answers for interactive flows. The command
// layer only ever has one outstanding question at a time, so a Provider
// is a single blocking input stream.
type Provider interface {
	Ask(question string) (string, error)
}

// readerProvider reads answers line by line from an input stream
type readerProvider struct {
	out io.Writer
	in  *bufio.Reader
}

// NewReaderProvider returns a Provider that prints questions to out and
// reads one answer line per question from in.
func NewReaderProvider(in io.Reader, out io.Writer) Provider {
	return &readerProvider{
		out: out,
		in:  bufio.NewReader(in),
	}
}

func (p *readerProvider) Ask(question string) (string, error) {
	if _, err := io.WriteString(p.out, question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		// EOF with no pending input counts as a cancel.
		if err == io.EOF {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
