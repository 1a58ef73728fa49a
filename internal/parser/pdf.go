package parser

import (
	"bytes"
	"io"

	pdflib "github.com/ledongthuc/pdf"
)

type pdfParser struct{}

// parse reads the whole upload into memory; uploads are size-capped by
// the HTTP layer.
func (pdfParser) parse(r io.Reader) (*outline, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	reader, err := pdflib.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, err
	}

	o := &outline{}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if len(bytes.TrimSpace([]byte(text))) == 0 {
			continue
		}
		o.page(i, text)
	}
	return o, nil
}
