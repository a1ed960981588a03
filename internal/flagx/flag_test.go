package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	allowed := []string{"-a", "-d", "--config"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "separate flag and value",
			args: []string{"-a", ":8080", "-x", "junk"},
			want: []string{"-a", ":8080"},
		},
		{
			name: "combined with equals",
			args: []string{"--config=conf.json", "-z=1"},
			want: []string{"--config=conf.json"},
		},
		{
			name: "flag without value followed by another flag",
			args: []string{"-a", "-d", "dsn"},
			want: []string{"-a", "-d", "dsn"},
		},
		{
			name: "nothing allowed",
			args: []string{"-q", "v"},
			want: []string{},
		},
		{
			name: "empty input",
			args: []string{},
			want: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterArgs(tc.args, allowed)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FilterArgs(%v) = %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}
