package models

import (
	"strings"
	"testing"
)

func validPreferencesPayload() map[string]interface{} {
	raw := make(map[string]interface{}, len(ColumnPreferenceKeys))
	for _, key := range ColumnPreferenceKeys {
		raw[key] = true
	}
	return raw
}

func TestDefaultColumnPreferences(t *testing.T) {
	prefs := DefaultColumnPreferences()

	if len(prefs) != len(ColumnPreferenceKeys) {
		t.Fatalf("default map has %d keys, want %d", len(prefs), len(ColumnPreferenceKeys))
	}

	// 引荐字段默认隐藏，其余默认可见
	for key, visible := range prefs {
		wantVisible := key != "reference_name" && key != "reference_phone_number"
		if visible != wantVisible {
			t.Errorf("default for %q = %v, want %v", key, visible, wantVisible)
		}
	}
}

func TestMergeColumnPreferences(t *testing.T) {
	merged := MergeColumnPreferences(map[string]bool{
		"status":         false,
		"reference_name": true,
	})

	if merged["status"] {
		t.Error("stored false must override default true")
	}
	if !merged["reference_name"] {
		t.Error("stored true must override default false")
	}
	if !merged["project_name"] {
		t.Error("unstored keys must keep defaults")
	}

	// 合并空配置等价于默认配置
	empty := MergeColumnPreferences(nil)
	if len(empty) != len(ColumnPreferenceKeys) {
		t.Error("merging nil must still yield every known key")
	}
}

func TestValidateColumnPreferences(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		raw := validPreferencesPayload()
		raw["status"] = false

		prefs, err := ValidateColumnPreferences(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if prefs["status"] {
			t.Error("status should be false")
		}
		if !prefs["type_of_lead"] {
			t.Error("type_of_lead should be true")
		}
	})

	t.Run("nil payload", func(t *testing.T) {
		if _, err := ValidateColumnPreferences(nil); err == nil {
			t.Fatal("expected error for nil payload")
		}
	})

	t.Run("missing key", func(t *testing.T) {
		raw := validPreferencesPayload()
		delete(raw, "intrested")

		_, err := ValidateColumnPreferences(raw)
		if err == nil || !strings.Contains(err.Error(), "intrested") {
			t.Fatalf("expected error naming intrested, got %v", err)
		}
	})

	t.Run("non boolean value", func(t *testing.T) {
		raw := validPreferencesPayload()
		raw["payment_info"] = "yes"

		_, err := ValidateColumnPreferences(raw)
		if err == nil || !strings.Contains(err.Error(), "payment_info") {
			t.Fatalf("expected error naming payment_info, got %v", err)
		}
	})

	t.Run("numeric value rejected", func(t *testing.T) {
		raw := validPreferencesPayload()
		raw["actions"] = float64(1) // JSON数字解码为float64

		if _, err := ValidateColumnPreferences(raw); err == nil {
			t.Fatal("expected error for numeric value")
		}
	})
}
