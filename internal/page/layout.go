package page

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LayoutPath is the default page layout file, relative to the working directory.
const LayoutPath = "assets/page.yaml"

// Layout is the static description of the page: nav bar and stacked sections.
type Layout struct {
	Title string `yaml:"title"`
	Nav   Nav    `yaml:"nav"`
	// HintRegion is the id of the section whose visibility shows the keybind hint.
	HintRegion string    `yaml:"hint_region"`
	Sections   []Section `yaml:"sections"`
}

// Nav is the fixed navigation bar.
type Nav struct {
	Height float32 `yaml:"height"`
	Links  []Link  `yaml:"links"`
}

// Link points at a section id.
type Link struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// Section is one stacked panel. Height is in viewport heights; Pixels, when set,
// is an absolute height that wins over Height.
type Section struct {
	ID     string  `yaml:"id"`
	Class  string  `yaml:"class"`
	Height float32 `yaml:"height,omitempty"`
	Pixels float32 `yaml:"pixels,omitempty"`
	Title  string  `yaml:"title,omitempty"`
	Blocks []Block `yaml:"blocks,omitempty"`
}

// Block is a run of text inside a section.
type Block struct {
	Heading string   `yaml:"heading,omitempty"`
	Text    string   `yaml:"text,omitempty"`
	Items   []string `yaml:"items,omitempty"`
	Link    string   `yaml:"link,omitempty"`
}

// LoadLayout reads and validates a YAML layout.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("page: %w", err)
	}
	return ParseLayout(data)
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("page: parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks section ids are unique and non-empty and heights are positive.
// Nav links may name missing sections; ScrollToSection reports those.
func (l Layout) Validate() error {
	if len(l.Sections) == 0 {
		return fmt.Errorf("page: layout has no sections")
	}
	seen := make(map[string]bool, len(l.Sections))
	for i, s := range l.Sections {
		if s.ID == "" {
			return fmt.Errorf("page: section %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("page: duplicate section id %q", s.ID)
		}
		if s.Height <= 0 && s.Pixels <= 0 {
			return fmt.Errorf("page: section %q has no height", s.ID)
		}
		seen[s.ID] = true
	}
	if l.HintRegion != "" && !seen[l.HintRegion] {
		return fmt.Errorf("page: hint region %q is not a section", l.HintRegion)
	}
	return nil
}

// Default returns the PremierePad page: hero and about panels one viewport tall each,
// the open-source panel, and a footer.
func Default() Layout {
	return Layout{
		Title: "PremierePad",
		Nav: Nav{
			Height: 64,
			Links: []Link{
				{Label: "About", Target: "about"},
				{Label: "Features", Target: "features"},
				{Label: "Open Source", Target: "open-source"},
				{Label: "Extra Info", Target: "extra-info"},
			},
		},
		HintRegion: "about",
		Sections: []Section{
			{ID: "hero", Class: "hero", Height: 1, Title: "PremierePad"},
			{ID: "about", Class: "about", Height: 1, Blocks: []Block{
				{Heading: "About macropad", Text: "The macropad is mainly made for editing. Bind actions you use often to save time, or set up macros that change the edit layout and much more."},
				{Heading: "Macropad Features", Text: "3 scenes and 6 customizable buttons, configured with VIA."},
			}},
			{ID: "open-source", Class: "open-source", Height: 1, Title: "Open Source", Blocks: []Block{
				{Text: "Anyone can view, modify, and contribute to the code."},
				{Link: "Visit our GitHub Repository"},
				{Heading: "Extra info", Items: []string{
					"PCB designed in KiCad",
					"Case designed with Fusion360",
					"Microcontroller firmware made with QMK",
					"Made for a YSWS by Hack Club",
				}},
			}},
			{ID: "footer", Class: "footer", Pixels: 56, Title: "Made by Cloudy"},
		},
	}
}
