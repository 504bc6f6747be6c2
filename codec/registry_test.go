package codec_test

import (
	"bytes"
	"testing"

	"github.com/ecmcodec/ecm/codec"
	_ "github.com/ecmcodec/ecm/ecm"
)

func TestCodecRegistry(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantFound bool
		wantUID   string
		wantName  string
	}{
		{
			name:      "Get ecm by UID",
			key:       "ECM/1",
			wantFound: true,
			wantUID:   "ECM/1",
			wantName:  "ecm",
		},
		{
			name:      "Get ecm by name",
			key:       "ecm",
			wantFound: true,
			wantUID:   "ECM/1",
			wantName:  "ecm",
		},
		{
			name:      "Get non-existent codec",
			key:       "non-existent",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := codec.Get(tt.key)

			if tt.wantFound {
				if err != nil {
					t.Errorf("Get(%q) unexpected error: %v", tt.key, err)
					return
				}
				if c == nil {
					t.Errorf("Get(%q) returned nil codec", tt.key)
					return
				}
				if c.UID() != tt.wantUID {
					t.Errorf("Get(%q).UID() = %q, want %q", tt.key, c.UID(), tt.wantUID)
				}
				if c.Name() != tt.wantName {
					t.Errorf("Get(%q).Name() = %q, want %q", tt.key, c.Name(), tt.wantName)
				}
			} else {
				if err == nil {
					t.Errorf("Get(%q) expected error, got nil", tt.key)
				}
				if err != codec.ErrCodecNotFound {
					t.Errorf("Get(%q) error = %v, want %v", tt.key, err, codec.ErrCodecNotFound)
				}
			}
		})
	}
}

func TestListCodecs(t *testing.T) {
	codecs := codec.List()

	if len(codecs) < 1 {
		t.Errorf("List() returned %d codecs, want at least 1", len(codecs))
	}

	found := false
	for _, c := range codecs {
		if c.UID() == "ECM/1" {
			found = true
			if c.Name() != "ecm" {
				t.Errorf("ecm codec name = %q, want %q", c.Name(), "ecm")
			}
		}
	}
	if !found {
		t.Error("List() did not include the ecm codec")
	}
}

// pointerOptions is a pointer-shaped codec.Options used only to exercise
// ValidateOptions' typed-nil guard; its Validate would panic on a nil
// receiver if that guard were missing.
type pointerOptions struct {
	bad bool
}

func (o *pointerOptions) Validate() error {
	if o.bad {
		return codec.ErrInvalidParameter
	}
	return nil
}

func TestValidateOptionsGuardsNilInterfaceAndTypedNil(t *testing.T) {
	if err := codec.ValidateOptions(nil); err != nil {
		t.Errorf("ValidateOptions(nil) = %v, want nil", err)
	}

	var p *pointerOptions
	if err := codec.ValidateOptions(p); err != nil {
		t.Errorf("ValidateOptions(typed nil *pointerOptions) = %v, want nil", err)
	}

	if err := codec.ValidateOptions(&pointerOptions{bad: true}); err != codec.ErrInvalidParameter {
		t.Errorf("ValidateOptions(&pointerOptions{bad: true}) = %v, want %v", err, codec.ErrInvalidParameter)
	}
}

func TestEcmCodecEncodeDecode(t *testing.T) {
	c, err := codec.Get("ECM/1")
	if err != nil {
		t.Fatalf("Failed to get ecm codec: %v", err)
	}

	original := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog"), 50)

	var encoded bytes.Buffer
	encStats, err := c.Encode(bytes.NewReader(original), &encoded, codec.EncodeParams{
		InputSize: int64(len(original)),
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	t.Logf("Encoded %d bytes into %d bytes", encStats.BytesIn, encStats.BytesOut)

	var decoded bytes.Buffer
	_, err = c.Decode(bytes.NewReader(encoded.Bytes()), &decoded, codec.DecodeParams{
		InputSize: int64(encoded.Len()),
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	if !bytes.Equal(decoded.Bytes(), original) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", decoded.Len(), len(original))
	}
}
