package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	addLabel      = "[ Add Task ]"
	addingLabel   = "Adding..."
	deleteLabel   = "[ Delete ]"
	deletingLabel = "Deleting..."
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Task Manager"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", m.renderAddButton()))
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(errorBoxStyle.Render(m.err))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderTasks())

	if m.confirmID != "" {
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render(msgConfirmDelete))
		b.WriteString("\n")
	}

	if m.toast != nil {
		b.WriteString("\n")
		style := successToast
		if m.toast.kind == toastError {
			style = errorToast
		}
		b.WriteString(style.Render(m.toast.text))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.renderHelp()))
	b.WriteString("\n")
	return b.String()
}

// addDisabled reports whether submitting is currently blocked.
func (m Model) addDisabled() bool {
	return m.loading || strings.TrimSpace(m.input.Value()) == ""
}

func (m Model) renderAddButton() string {
	label := addLabel
	if m.loading {
		label = addingLabel
	}
	if m.addDisabled() {
		return disabledButtonStyle.Render(label)
	}
	return buttonStyle.Render(label)
}

func (m Model) renderTasks() string {
	if m.loading && len(m.tasks) == 0 {
		return m.spinner.View() + " " + msgLoading + "\n"
	}
	if len(m.tasks) == 0 {
		return metaStyle.Render(msgNoTasks) + "\n"
	}

	var b strings.Builder
	for i, task := range m.tasks {
		action := deleteStyle.Render(deleteLabel)
		if task.ID == m.deletingID {
			action = m.spinner.View() + " " + deletingLabel
		}

		line := fmt.Sprintf("%s  %s", task.Title, action)
		if m.focus == focusList && i == m.selected {
			b.WriteString(selectedTaskStyle.Render("› " + line))
		} else {
			b.WriteString(taskStyle.Render(line))
		}
		b.WriteString("\n")
		b.WriteString(metaStyle.Render("Created: " + FormatCreatedAt(task.CreatedAt)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total tasks: %d", len(m.tasks)))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderHelp() string {
	var parts []string
	for _, k := range m.keys.helpFor(m.focus) {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "ctrl+c quit")
	return strings.Join(parts, " • ")
}
