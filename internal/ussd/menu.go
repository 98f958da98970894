package ussd

import "strings"

// Menu builds the numbered option screens handsets render. Options keep
// insertion order and are laid out one per line as "key. label" under the
// title.
type Menu struct {
	title   string
	options []menuOption
}

type menuOption struct {
	key   string
	label string
}

// NewMenu starts a menu with the given title line.
func NewMenu(title string) *Menu {
	return &Menu{title: title}
}

// Option appends one selectable entry.
func (m *Menu) Option(key, label string) *Menu {
	m.options = append(m.options, menuOption{key: key, label: label})
	return m
}

// Options appends entries in bulk, each pair being {key, label}.
func (m *Menu) Options(pairs ...[2]string) *Menu {
	for _, p := range pairs {
		m.options = append(m.options, menuOption{key: p[0], label: p[1]})
	}
	return m
}

// BuildContinue renders the menu into a session-continuing response.
func (m *Menu) BuildContinue() *Response {
	return Continue(m.render())
}

// BuildEnd renders the menu into a session-terminating response.
func (m *Menu) BuildEnd() *Response {
	return End(m.render())
}

func (m *Menu) render() string {
	var b strings.Builder
	b.WriteString(m.title)
	for _, opt := range m.options {
		b.WriteString("\n")
		b.WriteString(opt.key)
		b.WriteString(". ")
		b.WriteString(opt.label)
	}
	return b.String()
}
