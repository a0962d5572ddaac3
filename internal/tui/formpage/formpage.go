// ABOUTME: Create/edit form screen driven by an entity descriptor
// ABOUTME: Validates on submit and binds the server id after first save

package formpage

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"folio-admin/internal/client"
	"folio-admin/internal/entity"
	"folio-admin/internal/tui/event"
	"folio-admin/internal/tui/styles"
	"folio-admin/internal/validate"
)

// CancelledMsg is sent when the user leaves the form
type CancelledMsg struct{}

// phase is what the screen is currently doing
type phase int

const (
	phaseVariant phase = iota // choosing a variant before the field form
	phaseLoading              // fetching the record before editing
	phaseEditing
	phaseSaving
)

// recordLoadedMsg carries the fetched record
type recordLoadedMsg struct {
	record entity.Record
	err    error
}

// savedMsg carries the save response
type savedMsg struct {
	record entity.Record
	err    error
}

// Form is the create/edit screen for one entity
type Form struct {
	client *client.Client
	desc   entity.Descriptor

	// id is empty until the first successful save; after that every
	// submit is an update against the bound identifier
	id       string
	original entity.Record
	variant  string

	phase  phase
	form   *huh.Form
	errs   validate.Errors
	err    string
	notice string

	values map[string]*string
	bools  map[string]*bool
}

// New creates the form screen. A nil record means a fresh create;
// otherwise the record's values prefill the fields and saves update it.
func New(c *client.Client, desc entity.Descriptor, record entity.Record) *Form {
	f := &Form{
		client:   c,
		desc:     desc,
		original: record,
		values:   map[string]*string{},
		bools:    map[string]*bool{},
	}

	if record != nil {
		f.id = record.ID()
		if desc.VariantField != "" {
			f.variant = record.String(desc.VariantField)
		}
	}

	switch {
	case desc.Singleton:
		f.phase = phaseLoading
	case record != nil:
		// Edits populate from a fresh fetch, not the cached list row
		f.phase = phaseLoading
	case desc.VariantField != "":
		f.phase = phaseVariant
		f.form = f.variantForm()
	default:
		f.phase = phaseEditing
		f.form = f.fieldForm()
	}

	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	if f.phase == phaseLoading {
		return f.load()
	}
	return f.form.Init()
}

func (f *Form) variantForm() *huh.Form {
	var options []huh.Option[string]
	for _, v := range f.desc.Filter.Values {
		options = append(options, huh.NewOption(v, v))
	}
	if f.variant == "" {
		f.variant = f.desc.Filter.Values[0]
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Entry type").
				Options(options...).
				Value(&f.variant),
		).Title("New " + f.desc.Title),
	).WithTheme(styles.FormTheme())
}

func (f *Form) fieldForm() *huh.Form {
	fields := f.desc.FieldsFor(f.variant)
	var huhFields []huh.Field

	for _, fd := range fields {
		// Admin edits never touch passwords
		if f.id != "" && fd.Kind == entity.FieldPassword {
			continue
		}

		switch fd.Kind {
		case entity.FieldBool:
			// Reuse the pointer on rebuild so typed input survives a
			// failed validation pass
			v, ok := f.bools[fd.Name]
			if !ok {
				v = new(bool)
				if f.original != nil {
					if b, ok := f.original[fd.Name].(bool); ok {
						*v = b
					}
				}
				f.bools[fd.Name] = v
			}
			huhFields = append(huhFields, huh.NewConfirm().
				Title(fd.Label).
				Value(v))

		case entity.FieldSelect:
			v := f.stringValue(fd)
			if *v == "" && len(fd.Options) > 0 {
				*v = fd.Options[0]
			}
			var options []huh.Option[string]
			for _, o := range fd.Options {
				options = append(options, huh.NewOption(o, o))
			}
			huhFields = append(huhFields, huh.NewSelect[string]().
				Title(fd.Label).
				Options(options...).
				Value(v))

		case entity.FieldMultiline:
			v := f.stringValue(fd)
			huhFields = append(huhFields, huh.NewText().
				Title(fd.Label).
				Placeholder(fd.Placeholder).
				Value(v))

		case entity.FieldPassword:
			v, ok := f.values[fd.Name]
			if !ok {
				v = new(string)
				f.values[fd.Name] = v
			}
			huhFields = append(huhFields, huh.NewInput().
				Title(fd.Label).
				EchoMode(huh.EchoModePassword).
				Value(v))

		default: // FieldText, FieldFile
			var v *string
			if fd.Kind == entity.FieldFile {
				// File inputs start blank; blank-on-edit keeps the
				// existing server reference
				var ok bool
				if v, ok = f.values[fd.Name]; !ok {
					v = new(string)
					f.values[fd.Name] = v
				}
			} else {
				v = f.stringValue(fd)
			}
			huhFields = append(huhFields, huh.NewInput().
				Title(fd.Label).
				Placeholder(fd.Placeholder).
				Value(v))
		}
	}

	title := "New " + f.desc.Title
	if f.id != "" {
		title = "Edit " + f.desc.Title
	}
	if f.desc.Singleton {
		title = f.desc.Title
	}

	return huh.NewForm(
		huh.NewGroup(huhFields...).Title(title),
	).WithTheme(styles.FormTheme())
}

// stringValue returns the shared value pointer for a field, creating
// and prefilling it on first use
func (f *Form) stringValue(fd entity.Field) *string {
	if v, ok := f.values[fd.Name]; ok {
		return v
	}
	v := new(string)
	*v = f.prefill(fd)
	f.values[fd.Name] = v
	return v
}

// prefill returns the string form of the original record's value
func (f *Form) prefill(fd entity.Field) string {
	if f.original == nil {
		return ""
	}
	if fd.Lines {
		if items, ok := f.original[fd.Name].([]any); ok {
			var lines []string
			for _, item := range items {
				if s, ok := item.(string); ok {
					lines = append(lines, s)
				}
			}
			return strings.Join(lines, "\n")
		}
	}
	return f.original.String(fd.Name)
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordLoadedMsg:
		if msg.err != nil {
			if client.IsUnauthorized(msg.err) {
				return f, func() tea.Msg { return event.AuthExpiredMsg{} }
			}
			f.err = msg.err.Error()
			return f, nil
		}
		f.original = msg.record
		f.id = msg.record.ID()
		if f.desc.VariantField != "" {
			if v := msg.record.String(f.desc.VariantField); v != "" {
				f.variant = v
			}
		}
		f.phase = phaseEditing
		f.form = f.fieldForm()
		return f, f.form.Init()

	case savedMsg:
		return f.handleSaved(msg)

	case tea.KeyMsg:
		if f.phase == phaseSaving {
			return f, nil
		}
		if f.phase == phaseLoading {
			// Only escape works while fetching, so a failed load
			// is not a dead end
			if msg.String() == "esc" {
				return f, func() tea.Msg { return CancelledMsg{} }
			}
			return f, nil
		}
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
		f.err = ""
		f.notice = ""
	}

	if f.form == nil {
		return f, nil
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	if f.form.State == huh.StateCompleted {
		switch f.phase {
		case phaseVariant:
			f.phase = phaseEditing
			f.form = f.fieldForm()
			return f, f.form.Init()
		case phaseEditing:
			return f.submit()
		}
	}

	return f, cmd
}

func (f *Form) submit() (tea.Model, tea.Cmd) {
	record := f.assemble()

	editing := f.id != ""
	f.errs = validate.Validate(record, f.desc.RulesFor(editing, f.variant))
	if f.errs != nil {
		// Stay on the form so the messages can be fixed in place
		f.form = f.fieldForm()
		return f, f.form.Init()
	}

	// confirmPassword is a form-only field
	delete(record, "confirmPassword")

	f.phase = phaseSaving
	c, desc, id := f.client, f.desc, f.id
	return f, func() tea.Msg {
		saved, err := c.Save(context.Background(), desc, id, record)
		return savedMsg{record: saved, err: err}
	}
}

func (f *Form) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	f.phase = phaseEditing

	if msg.err != nil {
		if client.IsUnauthorized(msg.err) {
			return f, func() tea.Msg { return event.AuthExpiredMsg{} }
		}
		f.err = msg.err.Error()
		f.form = f.fieldForm()
		return f, f.form.Init()
	}

	// First save binds the server identifier; the form keeps editing
	// the now-persisted record instead of creating again
	if msg.record != nil {
		f.original = msg.record
		if id := msg.record.ID(); id != "" {
			f.id = id
		}
	}
	f.notice = f.desc.Title + " saved"
	f.form = f.fieldForm()
	return f, tea.Batch(
		f.form.Init(),
		func() tea.Msg { return event.NoticeMsg{Text: f.notice} },
	)
}

// assemble builds the submit record from the field values, keeping
// untouched keys from the original record on edit
func (f *Form) assemble() entity.Record {
	record := entity.Record{}
	if f.original != nil {
		for k, v := range f.original {
			record[k] = v
		}
	}

	for _, fd := range f.desc.FieldsFor(f.variant) {
		if v, ok := f.bools[fd.Name]; ok {
			record[fd.Name] = *v
			continue
		}
		v, ok := f.values[fd.Name]
		if !ok {
			continue
		}

		switch {
		case fd.Lines:
			record[fd.Name] = toAny(entity.ParseTagLines(*v))
		case fd.Kind == entity.FieldFile:
			// A typed path is a pending upload; blank keeps the
			// existing server reference on edit
			if *v != "" {
				record[fd.Name] = validate.LocalFile{Path: *v}
			}
		default:
			record[fd.Name] = *v
		}
	}

	if f.desc.VariantField != "" && f.variant != "" {
		record[f.desc.VariantField] = f.variant
	}
	return record
}

func toAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func (f *Form) load() tea.Cmd {
	c, desc, id := f.client, f.desc, f.id
	return func() tea.Msg {
		record, err := c.Get(context.Background(), desc, id)
		return recordLoadedMsg{record: record, err: err}
	}
}

// View implements tea.Model
func (f *Form) View() string {
	var b strings.Builder

	switch f.phase {
	case phaseLoading:
		if f.err != "" {
			b.WriteString(styles.StatusError.Render("Error: " + f.err))
		} else {
			b.WriteString(styles.Subtitle.Render("Loading..."))
		}
		return b.String()
	case phaseSaving:
		b.WriteString(styles.Subtitle.Render("Saving..."))
		b.WriteString("\n")
	}

	if f.notice != "" {
		b.WriteString(styles.StatusOK.Render(f.notice))
		b.WriteString("\n\n")
	}

	if f.form != nil {
		b.WriteString(f.form.View())
	}

	if len(f.errs) > 0 {
		b.WriteString("\n")
		for _, fd := range f.desc.FieldsFor(f.variant) {
			if msg, ok := f.errs[fd.Name]; ok {
				b.WriteString(styles.FieldError.Render("• " + msg))
				b.WriteString("\n")
			}
		}
	}

	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusError.Render("Error: " + f.err))
	}

	return b.String()
}
