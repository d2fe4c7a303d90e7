package types

import "errors"

// Options holds the user-facing settings of a label run. It is loaded once
// from config.yaml and flags, then passed by value; nothing reads it as
// ambient state.
type Options struct {
	Input  string `json:"input" yaml:"input" mapstructure:"input"`
	Output string `json:"output" yaml:"output" mapstructure:"output"`
	Filter string `json:"filter" yaml:"filter" mapstructure:"filter"`
	Bias   int    `json:"bias" yaml:"bias" mapstructure:"bias"`
	Name   string `json:"name" yaml:"name" mapstructure:"name"`
	Ret    bool   `json:"ret" yaml:"ret" mapstructure:"ret"`
	Test   bool   `json:"test" yaml:"test" mapstructure:"test"`
	Launch bool   `json:"launch" yaml:"launch" mapstructure:"launch"`
	Header bool   `json:"header" yaml:"header" mapstructure:"header"`
}

// DefaultOptions returns the options used when neither config.yaml nor a
// flag sets a value.
func DefaultOptions() Options {
	return Options{
		Input:  "addresses.xlsx",
		Output: "labels.pdf",
		Filter: "*",
		Header: true,
	}
}

// Option validation errors.
var (
	ErrInputEmpty   = errors.New("input must not be empty")
	ErrOutputEmpty  = errors.New("output must not be empty")
	ErrBiasNegative = errors.New("bias must not be negative")
	ErrRetNeedsName = errors.New("name must be set to use the ret option")
)

// Validate checks that the Options are well-formed. It returns a sentinel
// error from this package on failure.
func (o Options) Validate() error {
	if o.Input == "" {
		return ErrInputEmpty
	}
	if o.Output == "" {
		return ErrOutputEmpty
	}
	if o.Bias < 0 {
		return ErrBiasNegative
	}
	if o.Ret && o.Name == "" {
		return ErrRetNeedsName
	}
	return nil
}

// StoreConfig locates the SQLite address book for sqlite.Backend.Attach.
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

// Validate checks that the StoreConfig names a database file.
func (c StoreConfig) Validate() error {
	if c.Path == "" {
		return ErrStorePathEmpty
	}
	return nil
}
