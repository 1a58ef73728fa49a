package parser

import (
	"bufio"
	"io"
	"strings"
)

type textParser struct{}

func (textParser) parse(r io.Reader) (*outline, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	o := &outline{}
	var para []string
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			o.text(strings.Join(para, "\n"))
			para = para[:0]
			continue
		}
		para = append(para, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	o.text(strings.Join(para, "\n"))
	return o, nil
}
