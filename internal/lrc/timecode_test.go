package lrc

import "testing"

func TestParseTimeCode(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"00:00", 0},
		{"01:02", 62000},
		{"01:02.5", 62500},
		{"00:00:222", 222},
		{"00:00.22", 220},
		{"00:00.2229", 222},
		{"02:30.05", 150050},
		{"10:00:1", 600100},
		{"xx:05.10", 5100},
		{"01:yy.10", 60100},
		{"01:02.zz", 62000},
		{"garbage", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := ParseTimeCode(tt.token); got != tt.want {
				t.Errorf("ParseTimeCode(%q) = %d, want %d", tt.token, got, tt.want)
			}
		})
	}
}

func TestParseTimeCode_RoundTrip(t *testing.T) {
	for minutes := int64(0); minutes < 100; minutes += 7 {
		for seconds := int64(0); seconds < 60; seconds += 13 {
			for _, ms := range []int64{0, 5, 50, 999} {
				token := pad2(minutes) + ":" + pad2(seconds) + "." + pad3(ms)
				want := minutes*60000 + seconds*1000 + ms
				if got := ParseTimeCode(token); got != want {
					t.Errorf("ParseTimeCode(%q) = %d, want %d", token, got, want)
				}
			}
		}
	}
}

func pad2(n int64) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func pad3(n int64) string {
	return string([]byte{byte('0' + n/100), byte('0' + n/10%10), byte('0' + n%10)})
}
