package universe

import "sort"

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string   //template name
	Descr       string   //template descr
	Coordinates [][2]int //array of {row, column} coordinates relative to the template origin
}

var templates = map[string]Template{}

func init() {
	for _, t := range []Template{
		{"glider", "moves one cell down and right every 4 generations", [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
		{"blinker", "period 2 oscillator", [][2]int{{1, 0}, {1, 1}, {1, 2}}},
		{"block", "still life", [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
		{"toad", "period 2 oscillator", [][2]int{{1, 1}, {1, 2}, {1, 3}, {2, 0}, {2, 1}, {2, 2}}},
		{"beacon", "period 2 oscillator", [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 2}, {2, 3}, {3, 2}, {3, 3}}},
		{"lwss", "lightweight spaceship, moves right", [][2]int{{0, 1}, {0, 4}, {1, 0}, {2, 0}, {2, 4}, {3, 0}, {3, 1}, {3, 2}, {3, 3}}},
		{"sample", "mixed test sample", [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {3, 3}, {2, 4}, {3, 4}, {3, 5}}},
	} {
		AddTemplate(t)
	}
}

//AddTemplate adds the seeding template to the catalogue, replacing a template with the same name
func AddTemplate(t Template) {
	templates[t.Name] = t
}

//LookupTemplate returns the template registered under name
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

//TemplateNames returns the sorted names of all registered templates
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//SettleTemplate makes the template cells Alive with the template origin placed at row, column
//coordinates wrap around the universe edges
func (u *Universe) SettleTemplate(t Template, row int, column int) {
	if len(u.cells) == 0 {
		return
	}
	rc := make([][2]int, len(t.Coordinates))
	for i, p := range t.Coordinates {
		rc[i] = [2]int{wrap(row+p[0], u.height), wrap(column+p[1], u.width)}
	}
	u.SetCells(rc)
}

func wrap(v int, extent int) int {
	return (v%extent + extent) % extent
}
