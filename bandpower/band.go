package bandpower

import "fmt"

// Band is a closed frequency interval [Low, High] in Hz.
type Band struct {
	Low  float64
	High float64
}

// Validate reports whether the band satisfies 0 <= Low < High.
func (b Band) Validate() error {
	if b.Low < 0 {
		return fmt.Errorf("band lower edge must be >= 0 Hz: %f: %w", b.Low, ErrInvalidParameter)
	}
	if b.High <= b.Low {
		return fmt.Errorf("band must satisfy low < high: [%f, %f]: %w", b.Low, b.High, ErrInvalidParameter)
	}

	return nil
}

// String returns the interval in Hz.
func (b Band) String() string {
	return fmt.Sprintf("[%g, %g] Hz", b.Low, b.High)
}

// NamedBand pairs a band with its label.
type NamedBand struct {
	Name string
	Band Band
}

// Bands is an ordered collection of labelled bands. Iteration order is the
// declaration order and determines output ordering everywhere in this
// package.
type Bands []NamedBand

// Validate checks every band and requires unique, non-empty labels.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("band collection must not be empty: %w", ErrInvalidParameter)
	}

	seen := make(map[string]struct{}, len(b))
	for _, nb := range b {
		if nb.Name == "" {
			return fmt.Errorf("band label must not be empty: %w", ErrInvalidParameter)
		}
		if _, ok := seen[nb.Name]; ok {
			return fmt.Errorf("duplicate band label %q: %w", nb.Name, ErrInvalidParameter)
		}
		seen[nb.Name] = struct{}{}

		if err := nb.Band.Validate(); err != nil {
			return fmt.Errorf("band %q: %w", nb.Name, err)
		}
	}

	return nil
}

// Index returns the position of the named band, or -1 if absent.
func (b Bands) Index(name string) int {
	for i, nb := range b {
		if nb.Name == name {
			return i
		}
	}

	return -1
}

// DefaultEEGBands returns the conventional EEG band partition.
func DefaultEEGBands() Bands {
	return Bands{
		{Name: "Delta", Band: Band{Low: 0.5, High: 4}},
		{Name: "Theta", Band: Band{Low: 4, High: 8}},
		{Name: "Alpha", Band: Band{Low: 8, High: 12}},
		{Name: "Beta", Band: Band{Low: 12, High: 30}},
	}
}
