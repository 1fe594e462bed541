package workspace

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Parse reads an XML document and returns its root Element. Per §4.7,
// external entities are never resolved: encoding/xml never fetches a
// DOCTYPE's SYSTEM/PUBLIC identifier in the first place, and Entity is left
// empty here so only the five predefined XML entities (amp, lt, gt, apos,
// quot) are recognized — there is no entity-expansion surface to disable
// beyond what the stdlib decoder already refuses to do.
func Parse(data []byte) (*Element, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	dec.Strict = true

	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, &ParseError{Reason: "no root element"}
			}
			return nil, &ParseError{Reason: "malformed XML", Cause: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return parseElement(dec, start)
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*Element, error) {
	if start.Name.Local == "" {
		return nil, &ParseError{Reason: "element with missing name"}
	}
	el := &Element{Name: start.Name.Local}
	for _, a := range start.Attr {
		if a.Name.Local == "" {
			return nil, &ParseError{Reason: "attribute without a name on <" + el.Name + ">"}
		}
		el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
	}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("unterminated element <%s>", el.Name), Cause: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		case xml.EndElement:
			return el, nil
		}
	}
}
