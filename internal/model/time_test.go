package model

import "testing"

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"clock morning", "09:00", 540, false},
		{"clock midnight", "00:00", 0, false},
		{"clock last minute", "23:59", 1439, false},
		{"clock with spaces", " 10:30 ", 630, false},
		{"minute offset", "540", 540, false},
		{"minute offset zero", "0", 0, false},
		{"empty", "", 0, true},
		{"hour out of range", "24:00", 0, true},
		{"minute out of range", "10:60", 0, true},
		{"offset out of range", "1440", 0, true},
		{"negative offset", "-1", 0, true},
		{"garbage", "noon", 0, true},
		{"garbage with colon", "aa:bb", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MinuteOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MinuteOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("MinuteOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinute(t *testing.T) {
	if got := FormatMinute(540); got != "09:00" {
		t.Errorf("FormatMinute(540) = %q, want 09:00", got)
	}
	if got := FormatMinute(1439); got != "23:59" {
		t.Errorf("FormatMinute(1439) = %q, want 23:59", got)
	}
}
