package domain

import "testing"

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want bool
	}{
		{"interval is valid", KindInterval, true},
		{"sampling is valid", KindSampling, true},
		{"wavelet is valid", KindWavelet, true},
		{"spectral is valid", KindSpectral, true},
		{"empty is invalid", Kind(""), false},
		{"unknown is invalid", Kind("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.want {
				t.Errorf("Kind.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKind_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want string
	}{
		{"interval display", KindInterval, "Interval"},
		{"sampling display", KindSampling, "Sampling"},
		{"wavelet display", KindWavelet, "Wavelet"},
		{"spectral display", KindSpectral, "Spectral"},
		{"unknown passes through", Kind("custom"), "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.DisplayName(); got != tt.want {
				t.Errorf("Kind.DisplayName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Kind
		wantErr bool
	}{
		{"parse interval", "interval", KindInterval, false},
		{"parse sampling", "sampling", KindSampling, false},
		{"parse wavelet", "wavelet", KindWavelet, false},
		{"parse spectral", "spectral", KindSpectral, false},
		{"parse empty", "", "", true},
		{"parse unknown", "fourier", "", true},
		{"parse uppercase", "Interval", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseKind() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllKinds(t *testing.T) {
	kinds := AllKinds()
	if len(kinds) != 4 {
		t.Fatalf("AllKinds() returned %d kinds, want 4", len(kinds))
	}
	for _, k := range kinds {
		if !k.IsValid() {
			t.Errorf("AllKinds() contains invalid kind %q", k)
		}
	}
}

func TestDepthMethod_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		method DepthMethod
		want   bool
	}{
		{"midpoint is valid", DepthMethodMidpoint, true},
		{"from is valid", DepthMethodFrom, true},
		{"to is valid", DepthMethodTo, true},
		{"empty is invalid", DepthMethod(""), false},
		{"unknown is invalid", DepthMethod("bottom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.method.IsValid(); got != tt.want {
				t.Errorf("DepthMethod.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDepthMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DepthMethod
		wantErr bool
	}{
		{"parse midpoint", "midpoint", DepthMethodMidpoint, false},
		{"parse from", "from", DepthMethodFrom, false},
		{"parse to", "to", DepthMethodTo, false},
		{"parse empty", "", "", true},
		{"parse unknown", "centre", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDepthMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDepthMethod() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseDepthMethod() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllDepthMethods(t *testing.T) {
	methods := AllDepthMethods()
	if len(methods) != 3 {
		t.Fatalf("AllDepthMethods() returned %d methods, want 3", len(methods))
	}
	for _, m := range methods {
		if !m.IsValid() {
			t.Errorf("AllDepthMethods() contains invalid method %q", m)
		}
	}
}
