package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("required", nil); msg != "missing required property" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("required", nil); msg == "missing required property" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T("too_small", map[string]string{"got": "3", "minimum": "5"})
	if got != "value 3 below minimum 5" {
		t.Fatalf("got %q", got)
	}
	got = T(KeyMotionSweepFloor, map[string]string{"minimum": "14"})
	if got != "must be >= 14 seconds when motionOptIn is true" {
		t.Fatalf("got %q", got)
	}
}

func TestTranslator_UnknownKeyFallsBackToKey(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("got %q", got)
	}
}

type upper struct{}

func (upper) Message(key string, _ map[string]string) string { return "X:" + key }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("required", nil); got != "X:required" {
		t.Fatalf("got %q", got)
	}
}
