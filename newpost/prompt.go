package newpost

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"}

	headerStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(colorDim)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarn)
	hintStyle   = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

type step int

const (
	stepTitle step = iota
	stepExcerpt
	stepTags
	stepPublish
	stepOverwrite
	stepDone
)

func (s step) label() string {
	switch s {
	case stepTitle:
		return "Post title"
	case stepExcerpt:
		return "Brief excerpt"
	case stepTags:
		return "Tags (comma-separated)"
	case stepPublish:
		return "Publish immediately? (y/N)"
	case stepOverwrite:
		return "Overwrite? (y/N)"
	}
	return ""
}

type answer struct {
	label string
	value string
}

// Prompt is a bubbletea model that asks for the fields of a new post one at
// a time. Run it with tea.NewProgram and read the outcome with Result.
type Prompt struct {
	dir       string
	draft     Draft
	step      step
	input     textinput.Model
	answers   []answer
	warning   string
	overwrite bool
	cancelled bool
}

// NewPrompt starts a prompt for a post in dir. base supplies the fields that
// are not asked for, such as the date and author.
func NewPrompt(dir string, base Draft) Prompt {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()
	return Prompt{dir: dir, draft: base, input: ti}
}

func (p Prompt) Init() tea.Cmd {
	return textinput.Blink
}

func (p Prompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		p.cancelled = true
		p.step = stepDone
		return p, tea.Quit
	case tea.KeyEnter:
		return p.submit()
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p Prompt) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(p.input.Value())
	p.warning = ""

	switch p.step {
	case stepTitle:
		if Slugify(value) == "" {
			p.warning = "The title needs at least one letter or digit."
			return p, nil
		}
		p.draft.Title = value
	case stepExcerpt:
		p.draft.Excerpt = value
	case stepTags:
		p.draft.Tags = ParseTags(value)
	case stepPublish:
		p.draft.Published = yes(value)
	case stepOverwrite:
		p.overwrite = yes(value)
		p.cancelled = !p.overwrite
	}

	p.answers = append(p.answers, answer{label: p.step.label(), value: value})
	p.input.Reset()
	p.step = p.next()
	if p.step == stepDone {
		return p, tea.Quit
	}
	return p, nil
}

func (p Prompt) next() step {
	switch p.step {
	case stepPublish:
		if Exists(p.dir, p.draft) {
			return stepOverwrite
		}
		return stepDone
	case stepOverwrite:
		return stepDone
	}
	return p.step + 1
}

func (p Prompt) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Creating a new blog post"))
	b.WriteString("\n\n")
	for _, a := range p.answers {
		b.WriteString(doneStyle.Render(a.label + ": " + a.value))
		b.WriteString("\n")
	}
	if p.step == stepDone {
		return b.String()
	}
	if p.step == stepOverwrite {
		b.WriteString(warnStyle.Render("File " + p.draft.Slug() + ".md already exists."))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(p.step.label()))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")
	if p.warning != "" {
		b.WriteString(warnStyle.Render(p.warning))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter to continue, esc to cancel"))
	b.WriteString("\n")
	return b.String()
}

// Result returns the collected draft and whether an existing file may be
// replaced. Declining the overwrite counts as cancelling, so ErrCancelled is
// returned then as well as when the prompt was aborted or is unfinished.
func (p Prompt) Result() (Draft, bool, error) {
	if p.cancelled || p.step != stepDone {
		return Draft{}, false, ErrCancelled
	}
	return p.draft, p.overwrite, nil
}

// yes reports whether a y/N answer is affirmative. Anything but y or Y is no.
func yes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "y")
}
