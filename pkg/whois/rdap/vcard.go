package rdap

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// vcardProperty returns the text value of the first property named prop in a
// jCard ("vcardArray"):
//
//	["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "Example Registrar, Inc."]]]
//
// Properties whose value is not a plain string are ignored. An empty or null
// raw value yields "".
func vcardProperty(raw []byte, prop string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	d := jx.DecodeBytes(raw)
	if d.Next() != jx.Array {
		return "", nil
	}

	var value string
	idx := 0
	err := d.Arr(func(d *jx.Decoder) error {
		defer func() { idx++ }()
		if idx != 1 || d.Next() != jx.Array {
			return d.Skip()
		}

		return d.Arr(func(d *jx.Decoder) error {
			return readProperty(d, prop, &value)
		})
	})
	if err != nil {
		return "", errors.Wrap(err, "decode vcardArray")
	}

	return value, nil
}

// readProperty consumes one jCard property and stores its value when the
// property name matches and no value was found yet.
func readProperty(d *jx.Decoder, prop string, value *string) error {
	if d.Next() != jx.Array {
		return d.Skip()
	}

	var name string
	pos := 0

	return d.Arr(func(d *jx.Decoder) error {
		defer func() { pos++ }()

		switch {
		case pos == 0 && d.Next() == jx.String:
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "property name")
			}
			name = strings.ToLower(s)

			return nil
		case pos == 3 && name == prop && *value == "" && d.Next() == jx.String:
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "property value")
			}
			*value = strings.TrimSpace(s)

			return nil
		default:
			return d.Skip()
		}
	})
}
