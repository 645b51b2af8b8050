// Package formats is the static format capability registry: every format
// identifier the converter knows about, with read/write flags, plus the
// allow-lists that carve the image formats out of the shared engine
// vocabulary.
package formats

import "strings"

// Descriptor describes one format identifier.
type Descriptor struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Read        bool   `json:"read" yaml:"read"`
	Write       bool   `json:"write" yaml:"write"`
}

// Filter selects descriptors in List. Nil capability pointers match
// everything.
type Filter struct {
	Read  *bool
	Write *bool
	// ImageOnly restricts the result to the image allow-list matching the
	// requested direction: the output list when Write is set to true, the
	// input list otherwise.
	ImageOnly bool
}

var index = buildIndex()

func buildIndex() map[string]int {
	m := make(map[string]int, len(table))
	for i, d := range table {
		m[d.ID] = i
	}
	return m
}

func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Lookup finds a descriptor by identifier, ignoring case and surrounding
// whitespace.
func Lookup(name string) (Descriptor, bool) {
	i, ok := index[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return table[i], true
}

// All returns every descriptor in declaration order.
func All() []Descriptor {
	out := make([]Descriptor, len(table))
	copy(out, table)
	return out
}

// List returns the descriptors matching f in declaration order.
func List(f Filter) []Descriptor {
	var allow map[string]bool
	if f.ImageOnly {
		allow = imageInputs
		if f.Write != nil && *f.Write {
			allow = imageOutputs
		}
	}

	var out []Descriptor
	for _, d := range table {
		if f.Read != nil && d.Read != *f.Read {
			continue
		}
		if f.Write != nil && d.Write != *f.Write {
			continue
		}
		if allow != nil && !allow[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

func yes() *bool {
	b := true
	return &b
}

// Writable returns every format that can be written.
func Writable() []Descriptor { return List(Filter{Write: yes()}) }

// Readable returns every format that can be read.
func Readable() []Descriptor { return List(Filter{Read: yes()}) }

// ImageOutputs returns the writable formats offered as conversion targets.
func ImageOutputs() []Descriptor { return List(Filter{Write: yes(), ImageOnly: true}) }

// ImageInputs returns the readable formats accepted as conversion sources.
func ImageInputs() []Descriptor { return List(Filter{Read: yes(), ImageOnly: true}) }

// IsImageOutput reports whether name is an offered, writable conversion
// target.
func IsImageOutput(name string) bool {
	d, ok := Lookup(name)
	return ok && d.Write && imageOutputs[d.ID]
}

// IsImageInput reports whether name is an accepted, readable source format.
func IsImageInput(name string) bool {
	d, ok := Lookup(name)
	return ok && d.Read && imageInputs[d.ID]
}

// Popular returns the commonly used formats first-to-last, skipping names
// that are not in the table.
func Popular() []Descriptor {
	var out []Descriptor
	for _, id := range popular {
		if d, ok := Lookup(id); ok {
			out = append(out, d)
		}
	}
	return out
}

// Stats summarizes the registry and checks the allow-lists against the table.
type Stats struct {
	Total        int `json:"total" yaml:"total"`
	Readable     int `json:"readable" yaml:"readable"`
	Writable     int `json:"writable" yaml:"writable"`
	ImageInputs  int `json:"image_inputs" yaml:"image_inputs"`
	ImageOutputs int `json:"image_outputs" yaml:"image_outputs"`

	// MissingFromTable lists allow-listed names with no descriptor.
	MissingFromTable []string `json:"missing_from_table,omitempty" yaml:"missing_from_table,omitempty"`
	// WritableNotOffered lists writable formats left out of the output list.
	WritableNotOffered []string `json:"writable_not_offered,omitempty" yaml:"writable_not_offered,omitempty"`
	// ReadOnlyOffered lists output-list names that cannot be written.
	ReadOnlyOffered []string `json:"read_only_offered,omitempty" yaml:"read_only_offered,omitempty"`
}

// ComputeStats builds the registry summary.
func ComputeStats() Stats {
	s := Stats{
		Total:        len(table),
		Readable:     len(Readable()),
		Writable:     len(Writable()),
		ImageInputs:  len(ImageInputs()),
		ImageOutputs: len(ImageOutputs()),
	}

	for _, list := range [][]string{outputList, inputList} {
		for _, id := range list {
			if _, ok := index[id]; !ok {
				s.MissingFromTable = append(s.MissingFromTable, id)
			}
		}
	}
	for _, d := range table {
		if d.Write && !imageOutputs[d.ID] {
			s.WritableNotOffered = append(s.WritableNotOffered, d.ID)
		}
	}
	for _, id := range outputList {
		if d, ok := Lookup(id); ok && !d.Write {
			s.ReadOnlyOffered = append(s.ReadOnlyOffered, id)
		}
	}
	return s
}
