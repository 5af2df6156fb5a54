package director

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteTimeline writes a timeline to a YAML file
func WriteTimeline(tl *Timeline, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeTimeline(f, tl); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// EncodeTimeline writes a timeline as YAML to w
func EncodeTimeline(w io.Writer, tl *Timeline) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tl); err != nil {
		return err
	}
	return enc.Close()
}

// ReadTimeline reads a timeline from a YAML file
func ReadTimeline(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tl Timeline
	if err := yaml.Unmarshal(data, &tl); err != nil {
		return nil, err
	}

	return &tl, nil
}
