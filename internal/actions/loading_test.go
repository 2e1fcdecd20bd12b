package actions

import "testing"

func TestControl_LoadingToggle(t *testing.T) {
	btn := NewControl("Сменить статус")

	btn.SetLoading(true)
	if !btn.Disabled() {
		t.Error("control must be disabled while loading")
	}
	if btn.Label() != loadingLabel {
		t.Errorf("expected loading label, got %q", btn.Label())
	}

	btn.SetLoading(false)
	if btn.Disabled() {
		t.Error("control must be enabled after loading")
	}
	if btn.Label() != "Сменить статус" {
		t.Errorf("original label not restored: %q", btn.Label())
	}
}

func TestControl_DoubleEnableKeepsOriginalLabel(t *testing.T) {
	btn := NewControl("Экспорт")

	// Двойное включение не должно запомнить "Загрузка..." как исходную подпись
	btn.SetLoading(true)
	btn.SetLoading(true)
	btn.SetLoading(false)

	if btn.Label() != "Экспорт" {
		t.Errorf("expected %q after double enable, got %q", "Экспорт", btn.Label())
	}
	if btn.Disabled() {
		t.Error("control must be enabled")
	}
}

func TestControl_DisableWithoutEnableIsNoop(t *testing.T) {
	btn := NewControl("Кнопка")

	btn.SetLoading(false)

	if btn.Label() != "Кнопка" {
		t.Errorf("label changed by redundant disable: %q", btn.Label())
	}
	if btn.Disabled() {
		t.Error("control must stay enabled")
	}
}
