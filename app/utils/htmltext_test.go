package utils

import "testing"

func TestExtractHTMLText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "skips head script and style",
			input: `<html><head><title>Campus</title><style>p{color:red}</style></head>` +
				`<body><h1>Library</h1><p>Open 8 to 10</p><script>var x=1;</script></body></html>`,
			expected: "Library Open 8 to 10",
		},
		{
			name:     "trims whitespace per node",
			input:    "<p>  hostel \n rules  </p><p>fee schedule</p>",
			expected: "hostel \n rules fee schedule",
		},
		{
			name:     "tolerates malformed markup",
			input:    "<p>unclosed paragraph",
			expected: "unclosed paragraph",
		},
		{
			name:     "empty document",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractHTMLText(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ExtractHTMLText(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
