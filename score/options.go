package score

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Options holds the engine's configuration keys plus page geometry. It is
// YAML-decodable (gopkg.in/yaml.v3) so a score file or a sibling options
// file can set them directly.
type Options struct {
	StaffLines StaffLinesOptions `yaml:"staff_lines"`
	Score      ScoreOptions      `yaml:"score"`
	Page       PageOptions       `yaml:"page"`
}

// StaffLinesOptions groups the StaffLines.* keys from spec §6.
type StaffLinesOptions struct {
	// StopAtFinalBarline suppresses extending staff lines past the final
	// barline.
	StopAtFinalBarline bool `yaml:"stop_at_final_barline"`
}

// ScoreOptions groups the Score.* keys from spec §6.
type ScoreOptions struct {
	// JustifyFinalBarline includes the final barline in system
	// justification.
	JustifyFinalBarline bool `yaml:"justify_final_barline"`
	// FillPageWithEmptyStaves fills remaining vertical space with empty
	// systems.
	FillPageWithEmptyStaves bool `yaml:"fill_page_with_empty_staves"`
}

// PageOptions describes the page geometry in tenths. It accepts either a
// named preset (PageSize: "a4") or an explicit {width, height} pair.
type PageOptions struct {
	Size         PageSize `yaml:"size"`
	MarginTop    float64  `yaml:"margin_top"`
	MarginBottom float64  `yaml:"margin_bottom"`
	MarginLeft   float64  `yaml:"margin_left"`
	MarginRight  float64  `yaml:"margin_right"`
}

// PageSize is a page's width/height in tenths-equivalent logical units.
type PageSize struct {
	Width, Height float64
}

var pagePresets = map[string]PageSize{
	"a4":     {Width: 2100, Height: 2970},
	"letter": {Width: 2159, Height: 2794},
}

// UnmarshalYAML implements the preset-or-explicit decoding described
// above.
func (p *PageSize) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err == nil {
		preset, ok := pagePresets[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("score: unknown page size preset %q", name)
		}
		*p = preset
		return nil
	}

	var explicit struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	}
	if err := node.Decode(&explicit); err != nil {
		return fmt.Errorf("score: page size must be a preset name or {width, height}: %w", err)
	}
	*p = PageSize{Width: explicit.Width, Height: explicit.Height}
	return nil
}

// DefaultOptions returns the engine's defaults: A4, 100-tenth margins, and
// every boolean option off.
func DefaultOptions() Options {
	return Options{
		Page: PageOptions{
			Size:         pagePresets["a4"],
			MarginTop:    100,
			MarginBottom: 100,
			MarginLeft:   100,
			MarginRight:  100,
		},
	}
}

// ParsePageSizeToken parses a page-size token: a preset name ("a4",
// "letter") or an explicit "WxH" pair. The "WxH" form is accepted only
// here, not by PageSize.UnmarshalYAML.
func ParsePageSizeToken(token string) (PageSize, error) {
	if preset, ok := pagePresets[strings.ToLower(token)]; ok {
		return preset, nil
	}
	w, h, ok := strings.Cut(token, "x")
	if !ok {
		return PageSize{}, fmt.Errorf("score: invalid page size %q", token)
	}
	width, err1 := strconv.ParseFloat(w, 64)
	height, err2 := strconv.ParseFloat(h, 64)
	if err1 != nil || err2 != nil {
		return PageSize{}, fmt.Errorf("score: invalid page size %q", token)
	}
	return PageSize{Width: width, Height: height}, nil
}
