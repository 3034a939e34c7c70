package gmailbox

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name       string
		sender     string
		datePeriod string
		unread     bool
		want       string
		wantErr    bool
	}{
		{name: "empty", want: ""},
		{name: "sender only", sender: "a@b.c", want: "from:a@b.c"},
		{
			name:       "single day pushes exclusive end",
			datePeriod: "2026-08-28",
			want:       "after:2026/08/28 before:2026/08/29",
		},
		{
			name:       "range",
			datePeriod: "2026-01-01/2026-01-31",
			want:       "after:2026/01/01 before:2026/02/01",
		},
		{
			name:   "all criteria",
			sender: "boss@work.example",
			unread: true,
			want:   "from:boss@work.example is:unread",
		},
		{name: "bad date", datePeriod: "yesterday", wantErr: true},
		{name: "reversed range", datePeriod: "2026-02-01/2026-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildQuery(tt.sender, tt.datePeriod, tt.unread)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildQuery = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildQuery: %v", err)
			}
			if got != tt.want {
				t.Errorf("buildQuery = %q, want %q", got, tt.want)
			}
		})
	}
}
