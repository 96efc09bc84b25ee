package asn1rt

/*
opts.go contains the Options type, which delivers runtime instructions
to the encoding/decoding process, and its TOML loader.
*/

import (
	"io"

	"github.com/BurntSushi/toml"
)

/*
Options implements a simple encapsulator for codec options. Options
may be built in code or loaded from a TOML document with [LoadOptions].

	rule         = "APER"
	indefinite   = false
	boolean_true = 0xFF
	lenient_tags = false
	permissive   = false
*/
type Options struct {
	Rule        EncodingRule `toml:"rule"`         // rule used when none is given to Encode or Decode
	Indefinite  bool         `toml:"indefinite"`   // BER: emit constructed values with indefinite lengths
	BooleanTrue uint8        `toml:"boolean_true"` // BER: octet emitted for TRUE; zero means 0xFF
	LenientTags bool         `toml:"lenient_tags"` // BER: accept any class and number where a tag is expected
	Permissive  bool         `toml:"permissive"`   // suppress codec errors and return best-effort output
}

/*
trueByte returns the BER content octet for a TRUE value.
*/
func (r *Options) trueByte() byte {
	if r == nil || r.BooleanTrue == 0 {
		return 0xFF
	}
	return r.BooleanTrue
}

/*
String returns the string representation of the receiver instance.
*/
func (r Options) String() string {
	var parts []string
	if r.Rule != invalidEncodingRule {
		parts = append(parts, "rule:"+r.Rule.String())
	}
	addStringConfigValue(&parts, r.Indefinite, "indefinite")
	addStringConfigValue(&parts, r.BooleanTrue != 0,
		"boolean-true:"+fmtUint(uint64(r.BooleanTrue), 16))
	addStringConfigValue(&parts, r.LenientTags, "lenient-tags")
	addStringConfigValue(&parts, r.Permissive, "permissive")
	return join(parts, ",")
}

// add appends val to dst if cond is true.
func addStringConfigValue(dst *[]string, cond bool, val string) {
	if cond {
		*dst = append(*dst, val)
	}
}

/*
LoadOptions reads a TOML document from rd into an instance of [Options].
Unknown keys are rejected.
*/
func LoadOptions(rd io.Reader) (Options, error) {
	var opts Options
	md, err := toml.NewDecoder(rd).Decode(&opts)
	if err != nil {
		return Options{}, mkerrf("options: ", err)
	}
	return opts, checkOptions(md, opts)
}

/*
LoadOptionsFile is a convenience wrapper around [toml.DecodeFile] with
the same checks as [LoadOptions].
*/
func LoadOptionsFile(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, mkerrf("options: ", path, ": ", err)
	}
	return opts, checkOptions(md, opts)
}

func checkOptions(md toml.MetaData, opts Options) error {
	if undec := md.Undecoded(); len(undec) > 0 {
		var keys []string
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return mkerrf("options: unknown key(s) ", join(keys, ", "))
	} else if opts.Indefinite && opts.Rule.packed() {
		return mkerrf("options: indefinite lengths require BER, not ", opts.Rule.String())
	}
	return nil
}
