package asn1rt

/*
er.go contains the EncodingRule abstraction and the runtime option
envelope accepted by [Encode] and [Decode].
*/

/*
EncodingRule describes the ASN.1 encoding rule used by a codec call.
*/
type EncodingRule int

const (
	invalidEncodingRule EncodingRule = iota
	BER                              // Basic Encoding Rules (ITU-T X.690)
	APER                             // aligned Packed Encoding Rules (ITU-T X.691)
	UPER                             // unaligned Packed Encoding Rules; scalar kinds only
)

// for unit tests
var encodingRules []EncodingRule = []EncodingRule{BER, APER, UPER}

/*
In returns a Boolean instance indicative of r being present within e.
*/
func (r EncodingRule) In(e ...EncodingRule) (is bool) {
	for i := 0; i < len(e) && !is; i++ {
		is = r == e[i]
	}

	return
}

/*
packed returns a Boolean value indicative of the receiver being one of
the PER variants.
*/
func (r EncodingRule) packed() bool { return r.In(APER, UPER) }

/*
String returns the string representation of the receiver instance.
*/
func (r EncodingRule) String() string {
	var s string = `invalid`
	switch r {
	case BER:
		s = `BER`
	case APER:
		s = `APER`
	case UPER:
		s = `UPER`
	}

	return s
}

/*
ParseEncodingRule returns the [EncodingRule] named by s. Matching is
case-insensitive and "PER" is accepted as an alias of [APER].
*/
func ParseEncodingRule(s string) (EncodingRule, error) {
	switch uc(trimS(s)) {
	case `BER`:
		return BER, nil
	case `APER`, `PER`:
		return APER, nil
	case `UPER`:
		return UPER, nil
	}
	return invalidEncodingRule, mkerrf("unknown encoding rule ", s)
}

/*
MarshalText implements [encoding.TextMarshaler].
*/
func (r EncodingRule) MarshalText() ([]byte, error) {
	if r == invalidEncodingRule {
		return nil, errorNoRule
	}
	return []byte(r.String()), nil
}

/*
UnmarshalText implements [encoding.TextUnmarshaler], allowing a rule
to be named in a configuration file.
*/
func (r *EncodingRule) UnmarshalText(b []byte) (err error) {
	*r, err = ParseEncodingRule(string(b))
	return
}

type EncodingOption func(*encodingConfig)

type encodingConfig struct {
	rule EncodingRule
	opts *Options
}

/*
With encapsulates instances of [EncodingRule] and [Options] into a single payload for
submission to [Encode] and [Decode]. This function is intended to be executed
in-line as a variadic input value to [Encode] and [Decode].

An [EncodingRule] given here takes precedence over [Options.Rule].
*/
func With(args ...any) EncodingOption {
	var rule EncodingRule = invalidEncodingRule
	var opts *Options

	for i := 0; i < len(args); i++ {
		switch tv := args[i].(type) {
		case EncodingRule:
			rule = tv
		case Options:
			opts = &tv
		case *Options:
			opts = tv
		}
	}

	return func(cfg *encodingConfig) {
		if opts != nil {
			cfg.opts = opts
		}
		if rule != invalidEncodingRule {
			cfg.rule = rule
		}
	}
}

/*
newEncodingConfig applies options over the defaults: BER, or the rule
named by the supplied [Options].
*/
func newEncodingConfig(options []EncodingOption) *encodingConfig {
	cfg := &encodingConfig{}
	for _, o := range options {
		o(cfg)
	}

	if cfg.opts == nil {
		cfg.opts = &Options{}
	}
	if cfg.rule == invalidEncodingRule {
		if cfg.rule = cfg.opts.Rule; cfg.rule == invalidEncodingRule {
			cfg.rule = BER
		}
	}
	return cfg
}
