package browser

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://cdn.example.com/img/widget.png", false},
		{"http://localhost:5000/uploads/a.jpg", false},
		{"file:///etc/passwd", true},
		{"javascript:alert(1)", true},
		{"/uploads/a.jpg", true},
		{"https://", true},
		{"", true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			err := Validate(tc.raw)
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
			}
		})
	}
}

func TestOpenRejectsBeforeLaunching(t *testing.T) {
	if err := Open("file:///etc/passwd"); err == nil {
		t.Error("Open should refuse non-http urls")
	}
}
