package conf

import (
	"io"
	"os"
	"strings"
)

// Conf holds the significant lines of a table file: blank lines and lines
// starting with '#' are dropped
type Conf struct {
	Values []string
}

func Read(reader io.Reader) (*Conf, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(data), "\n")
	retval := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > 0 && trimmed[0] != '#' {
			retval = append(retval, line)
		}
	}
	return &Conf{retval}, nil
}

func ReadFile(filename string) (*Conf, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file)
}

// Fields returns every whitespace separated field of the file in order
func (c *Conf) Fields() []string {
	retval := make([]string, 0, len(c.Values)*4)
	for _, line := range c.Values {
		retval = append(retval, strings.Fields(line)...)
	}
	return retval
}
