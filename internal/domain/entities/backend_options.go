package entities

// BackendOptions holds runtime options passed to build backends.
type BackendOptions struct {
	Verbose   bool
	Force     bool   // Overwrite a pre-existing setup.py
	OutputDir string // Where artifacts land, relative to the project dir
	Python    string // Explicit interpreter, empty for PATH lookup
}
