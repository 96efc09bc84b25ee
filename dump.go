package asn1rt

/*
dump.go contains the BER diagnostic dump.
*/

import "io"

/*
Dump writes an indented tree of the BER elements within data to w:
one line per identifier with its class, number and length, followed by
the hex content of primitive elements. Constructed elements are
descended into. Octets following the last complete element are
reported as an error.
*/
func Dump(w io.Writer, data []byte, wrapAt ...int) error {
	width := 16
	if len(wrapAt) > 0 && wrapAt[0] > 0 {
		width = wrapAt[0]
	}
	return dumpLevel(w, data, 0, width)
}

func dumpLevel(w io.Writer, data []byte, depth, width int) error {
	indent := strrpt("  ", depth)

	for offset := 0; offset < len(data); {
		t, total, err := readTLV(data[offset:])
		if err != nil {
			return decodingErrorf("dump at offset ", offset, ": ", err)
		}

		line := newStrBuilder()
		line.WriteString(indent)
		line.WriteString(dumpTagName(t.Class, t.Tag))
		if t.Compound {
			line.WriteString(" constructed")
		}
		line.WriteString(", len=")
		if t.Length < 0 {
			line.WriteString("indefinite")
		} else {
			line.WriteString(itoa(t.Length))
		}
		line.WriteByte('\n')

		if _, err = io.WriteString(w, line.String()); err != nil {
			return err
		}

		if t.Compound {
			err = dumpLevel(w, t.Value, depth+1, width)
		} else {
			err = dumpHexLines(w, t.Value, depth, width)
		}
		if err != nil {
			return err
		}

		offset += total
	}

	return nil
}

func dumpTagName(class, tag int) string {
	if class == ClassUniversal {
		if name, ok := TagNames[tag]; ok {
			return name
		}
	}
	return "[" + ClassNames[class] + " " + itoa(tag) + "]"
}

// dumpHexLines prints raw bytes in width-byte hex lines under the given indent.
func dumpHexLines(w io.Writer, b []byte, depth, width int) error {
	indent := strrpt("  ", depth)

	for i := 0; i < len(b); i += width {
		end := i + width
		if end > len(b) {
			end = len(b)
		}

		line := newStrBuilder()
		line.WriteString(indent)
		line.WriteString("  ") // extra two-space gutter

		for j, x := range b[i:end] {
			if j > 0 {
				line.WriteByte(' ')
			}
			line.WriteByte(hexDigits[x>>4])
			line.WriteByte(hexDigits[x&0xF])
		}
		line.WriteByte('\n')

		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
