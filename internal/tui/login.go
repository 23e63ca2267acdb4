package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/chinmaya-kumar-behera/ecommerce-frontend/pkg/domain"
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
	fieldFirstName
	fieldLastName
	fieldPhone
	fieldAddress
	fieldRole
	numLoginFields
)

var fieldLabels = [numLoginFields]string{"email", "password", "first name", "last name", "phone", "address", "role"}

var registerRoles = []domain.Role{domain.RoleCustomer, domain.RoleSeller}

// loggedInMsg reports an established session.
type loggedInMsg struct {
	session domain.Session
}

type loginFailedMsg struct {
	err error
}

// loginModel is the sign-in form, switchable to registration.
type loginModel struct {
	api       AuthAPI
	sessions  Sessions
	register  bool
	fields    [numLoginFields]string
	role      int // index into registerRoles
	focus     loginField
	submitted bool
	status    string
}

func newLoginModel(api AuthAPI, sessions Sessions) loginModel {
	return loginModel{api: api, sessions: sessions}
}

// visibleFields lists the fields of the current mode in tab order.
func (m loginModel) visibleFields() []loginField {
	if !m.register {
		return []loginField{fieldEmail, fieldPassword}
	}
	return []loginField{fieldFirstName, fieldLastName, fieldEmail, fieldPassword, fieldPhone, fieldAddress, fieldRole}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case loginFailedMsg:
		m.submitted = false
		m.status = errText(msg.err)

	case loggedInMsg:
		m.submitted = false
		m.fields[fieldPassword] = ""

	case tea.KeyMsg:
		if m.submitted {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m loginModel) updateKeys(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	m.status = ""
	fields := m.visibleFields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
		}
	}

	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+r":
		m.register = !m.register
		m.focus = m.visibleFields()[0]
	case "tab", "down":
		m.focus = fields[(pos+1)%len(fields)]
	case "shift+tab", "up":
		m.focus = fields[(pos-1+len(fields))%len(fields)]
	case "enter":
		if pos == len(fields)-1 {
			return m.submit()
		}
		m.focus = fields[pos+1]
	case "left", "right":
		if m.focus == fieldRole {
			m.role = (m.role + 1) % len(registerRoles)
		}
	default:
		if m.focus != fieldRole {
			m.fields[m.focus] = ruleFor(m.focus).edit(m.fields[m.focus], msg.String())
		}
	}
	return m, nil
}

func (m loginModel) credentials() domain.Credentials {
	return domain.Credentials{
		Email:    strings.TrimSpace(m.fields[fieldEmail]),
		Password: m.fields[fieldPassword],
	}
}

func (m loginModel) registration() domain.Registration {
	return domain.Registration{
		FirstName: strings.TrimSpace(m.fields[fieldFirstName]),
		LastName:  strings.TrimSpace(m.fields[fieldLastName]),
		Email:     strings.TrimSpace(m.fields[fieldEmail]),
		Password:  m.fields[fieldPassword],
		Phone:     strings.TrimSpace(m.fields[fieldPhone]),
		Address:   strings.TrimSpace(m.fields[fieldAddress]),
		Role:      registerRoles[m.role],
	}
}

// submit validates the form locally before any request is sent.
func (m loginModel) submit() (loginModel, tea.Cmd) {
	creds := m.credentials()
	var reg domain.Registration
	if m.register {
		reg = m.registration()
		if err := reg.Validate(); err != nil {
			m.status = err.Error()
			return m, nil
		}
	} else if err := creds.Validate(); err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.submitted = true
	api, sessions, register := m.api, m.sessions, m.register
	return m, func() tea.Msg {
		ctx := context.Background()
		if register {
			if err := api.Register(ctx, reg); err != nil {
				return loginFailedMsg{err: err}
			}
		}
		token, err := api.Login(ctx, creds)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		s, err := sessions.Establish(token)
		if err != nil {
			return loginFailedMsg{err: err}
		}
		return loggedInMsg{session: s}
	}
}

func (m loginModel) View() string {
	var b strings.Builder

	title, other := "Sign in", "ctrl+r to register"
	if m.register {
		title, other = "Create account", "ctrl+r to sign in"
	}
	fmt.Fprintf(&b, " %s  %s\n\n", selectedStyle.Render(title), metaStyle.Render(other))

	for _, f := range m.visibleFields() {
		focused := f == m.focus
		if f == fieldRole {
			role := string(registerRoles[m.role])
			b.WriteString(renderField(fieldLabels[f], role+"  (←/→)", "", focused, false) + "\n")
			continue
		}
		b.WriteString(renderField(fieldLabels[f], m.fields[f], fieldLabels[f], focused, f == fieldPassword) + "\n")
	}

	b.WriteString("\n")
	if m.submitted {
		b.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	} else if m.status != "" {
		b.WriteString(" " + rejectStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m loginModel) helpKeys() string {
	return helpBar("tab", "next", "enter", "submit", "ctrl+r", "switch form", "esc", "cancel")
}
