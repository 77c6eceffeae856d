package bussystem

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// AttributesKey is the reserved key element attributes are gathered under
// when an XML response is converted into the JSON-equivalent shape.
const AttributesKey = "@attributes"

// ParseXML converts an arbitrary XML document into the same map/slice/string
// structure a JSON response decodes to: each element becomes a map of its
// children, repeated child tags coalesce into a slice, attributes live under
// AttributesKey and leaf elements collapse to their trimmed text.
func ParseXML(reader io.Reader) (interface{}, error) {
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := d.Token()
		if tok == nil || err == io.EOF {
			return nil, &Error{Code: ErrorCodeParse, Message: "document has no root element"}
		} else if err != nil {
			return nil, &Error{Code: ErrorCodeParse, Message: err.Error()}
		}

		if start, ok := tok.(xml.StartElement); ok {
			value, err := parseElement(d, start)
			if err != nil {
				return nil, &Error{Code: ErrorCodeParse, Message: err.Error()}
			}

			return map[string]interface{}{start.Name.Local: value}, nil
		}
	}
}

func parseElement(d *xml.Decoder, start xml.StartElement) (interface{}, error) {
	children := map[string]interface{}{}
	var text strings.Builder

	if len(start.Attr) > 0 {
		attributes := map[string]interface{}{}
		for _, attr := range start.Attr {
			attributes[attr.Name.Local] = attr.Value
		}

		children[AttributesKey] = attributes
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(d, t)
			if err != nil {
				return nil, err
			}

			appendChild(children, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			trimmed := strings.TrimSpace(text.String())
			if len(children) == 0 {
				return trimmed, nil
			}

			// An attributed or mixed-content element keeps its text under
			// its own tag name, next to @attributes and any children.
			if trimmed != "" {
				appendChild(children, start.Name.Local, trimmed)
			}

			return children, nil
		}
	}
}

// appendChild inserts a child value, turning the second occurrence of a tag
// into a slice so repeated elements behave like JSON arrays.
func appendChild(children map[string]interface{}, name string, value interface{}) {
	existing, ok := children[name]
	if !ok {
		children[name] = value
		return
	}

	if list, isList := existing.([]interface{}); isList {
		children[name] = append(list, value)
		return
	}

	children[name] = []interface{}{existing, value}
}
