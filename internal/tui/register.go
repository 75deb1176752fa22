package tui

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-order-desk/internal/app"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/internal/validators"
	"github.com/MKhiriev/go-order-desk/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	registerName = iota
	registerSurname
	registerEmail
	registerBirthDate
	registerPassword
	registerRepeatPassword
	registerFieldsCount
)

var registerLabels = [registerFieldsCount]string{
	"Name", "Surname", "Email", "Birth date", "Password", "Repeat password",
}

var registerFieldKeys = [registerFieldsCount]string{
	validators.FieldName,
	validators.FieldSurname,
	validators.FieldEmail,
	validators.FieldBirthDate,
	validators.FieldPassword,
	validators.FieldRepeatPassword,
}

// RegisterModel is the Bubble Tea model for the registration screen. It renders six
// text inputs (name, surname, email, birth date, password and its confirmation) and
// dispatches an async registration command on form submission.
// When the gateway also logs the user in, [RootModel] finishes the flow on the
// [RegisterResult]; otherwise the form is reset and the menu shows a notice.
type RegisterModel struct {
	ctx  context.Context
	auth service.ClientAuthService

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
	fieldErrs  validators.FieldErrors
}

// NewRegisterModel creates a [RegisterModel] with six pre-configured text inputs.
// The name field receives focus immediately; the password fields use masked echo.
func NewRegisterModel(ctx context.Context, auth service.ClientAuthService) *RegisterModel {
	fields := make([]textinput.Model, registerFieldsCount)
	for i := range fields {
		fields[i] = textinput.New()
		fields[i].Width = 40
	}

	fields[registerName].Placeholder = "name"
	fields[registerName].Focus()
	fields[registerSurname].Placeholder = "surname"
	fields[registerEmail].Placeholder = "email"
	fields[registerEmail].CharLimit = 254
	fields[registerBirthDate].Placeholder = "YYYY-MM-DD"
	fields[registerBirthDate].CharLimit = 10

	for _, i := range []int{registerPassword, registerRepeatPassword} {
		fields[i].Placeholder = "password"
		fields[i].EchoMode = textinput.EchoPassword
		fields[i].EchoCharacter = '*'
	}
	fields[registerRepeatPassword].Placeholder = "repeat password"

	return &RegisterModel{
		ctx:    ctx,
		auth:   auth,
		inputs: fields,
	}
}

// Init implements [tea.Model]. Starts the cursor-blink animation for the active input.
func (m *RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled messages:
//   - [RegisterResult]: clears submitting state; on error, populates errMsg or the
//     field errors; when no session was started, resets the form and navigates to the menu.
//   - esc: cancels and navigates back to the menu.
//   - tab: moves focus to the next input.
//   - shift+tab: moves focus to the previous input.
//   - enter: dispatches the async registration command.
//
// All other key events are forwarded to the focused input widget.
func (m *RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(RegisterResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.showError(result.Err)
			return m, nil
		}

		m.errMsg = ""
		m.fieldErrs = nil
		m.resetForm()
		return m, func() tea.Msg {
			return NavigateTo{
				Page:    pageMenu,
				Payload: StatusNotice{Text: app.MsgRegistrationSucceeded},
			}
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			m.fieldErrs = nil
			return m, func() tea.Msg { return NavigateTo{Page: pageMenu} }
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			m.errMsg = ""
			m.fieldErrs = nil
			m.submitting = true
			return m, m.cmdRegister(models.RegisterForm{
				Name:           strings.TrimSpace(m.inputs[registerName].Value()),
				Surname:        strings.TrimSpace(m.inputs[registerSurname].Value()),
				Email:          strings.TrimSpace(m.inputs[registerEmail].Value()),
				BirthDate:      strings.TrimSpace(m.inputs[registerBirthDate].Value()),
				Password:       m.inputs[registerPassword].Value(),
				RepeatPassword: m.inputs[registerRepeatPassword].Value(),
			})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// View implements [tea.Model]. Renders the registration form as a two-column table
// with all six input fields, a submission indicator, and an optional error message.
func (m *RegisterModel) View() string {
	var b strings.Builder
	b.WriteString("Field            │ Value\n")
	b.WriteString("─────────────────┼────────────────────────────────────\n")
	for i := range m.inputs {
		renderFormRow(&b, registerLabels[i], 16, m.inputs[i], m.fieldErrs[registerFieldKeys[i]])
	}

	if m.submitting {
		b.WriteString("\n[Registering...]\n")
	} else {
		b.WriteString("\n[Register]\n")
	}

	renderError(&b, m.errMsg)

	return renderPage("REGISTER", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *RegisterModel) showError(err error) {
	if fieldErrs, ok := fieldErrors(err); ok {
		m.fieldErrs = fieldErrs
		m.errMsg = ""
		return
	}
	m.fieldErrs = nil
	m.errMsg = humanizeError(err)
}

func (m *RegisterModel) cmdRegister(form models.RegisterForm) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		session, loggedIn, err := auth.Register(ctx, form)
		return RegisterResult{
			Session:  session,
			LoggedIn: loggedIn,
			Email:    form.Email,
			Err:      err,
		}
	}
}

func (m *RegisterModel) resetForm() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
