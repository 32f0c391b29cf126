package models

import (
	"encoding/json"
	"testing"
)

func TestRecordDecodesFacebookFields(t *testing.T) {
	doc := `{
		"identifier": "x",
		"title": "GAG @ Chaos in Tejas on 5/30/2014",
		"fb": "https://www.facebook.com/events/99",
		"facebook": "https://www.facebook.com/events/100"
	}`

	var record Record
	if err := json.Unmarshal([]byte(doc), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if record.Fb != "https://www.facebook.com/events/99" {
		t.Errorf("fb = %q", record.Fb)
	}
	if record.Facebook != "https://www.facebook.com/events/100" {
		t.Errorf("facebook = %q", record.Facebook)
	}
}

func TestEffectiveDate(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "stored date wins",
			record: Record{Date: "2014-05-30", PublicDate: "2014-06-01T00:00:00Z"},
			want:   "2014-05-30",
		},
		{
			name:   "public date fallback",
			record: Record{PublicDate: "2014-06-01T00:00:00Z"},
			want:   "2014-06-01T00:00:00Z",
		},
		{
			name:   "both empty",
			record: Record{},
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EffectiveDate(); got != tt.want {
				t.Errorf("EffectiveDate() = %q, want %q", got, tt.want)
			}
		})
	}
}
