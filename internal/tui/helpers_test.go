package tui

import tea "github.com/charmbracelet/bubbletea"

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// typeInto sends s rune by rune.
func typeInto(model tea.Model, s string) tea.Model {
	for _, r := range s {
		model, _ = model.Update(keyRunes(string(r)))
	}
	return model
}
