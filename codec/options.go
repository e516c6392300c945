package codec

// Engine selects the TOML implementation.
type Engine string

const (
	// EngineMini is the built-in flat `key = value` engine.
	EngineMini Engine = "mini"
	// EngineStd parses and writes full TOML through github.com/BurntSushi/toml.
	EngineStd Engine = "std"
)

// ParseEngine maps a name to an Engine. Unknown names fall back to
// EngineMini.
func ParseEngine(s string) Engine {
	if Engine(s) == EngineStd {
		return EngineStd
	}
	return EngineMini
}

type options struct {
	tomlEngine     Engine
	jsonIndent     string
	xmlIndent      int
	xmlCaptureText bool
	csvDelimiter   rune
}

// Option configures the codecs returned by New and NewRows. Options that do
// not apply to the requested format are ignored.
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{tomlEngine: EngineMini}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func TomlEngine(e Engine) Option {
	return func(o *options) {
		o.tomlEngine = e
	}
}

// JSONIndent pretty-prints JSON output with the given indent string.
func JSONIndent(indent string) Option {
	return func(o *options) {
		o.jsonIndent = indent
	}
}

// XMLIndent sets the starting indent level of XML output.
func XMLIndent(level int) Option {
	return func(o *options) {
		o.xmlIndent = level
	}
}

func XMLCaptureText(capture bool) Option {
	return func(o *options) {
		o.xmlCaptureText = capture
	}
}

// CSVDelimiter sets the field delimiter; zero means ','.
func CSVDelimiter(r rune) Option {
	return func(o *options) {
		o.csvDelimiter = r
	}
}
