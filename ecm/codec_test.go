package ecm

import "testing"

func TestOptionsValidate(t *testing.T) {
	if err := (Options{}).Validate(); err != nil {
		t.Errorf("Options{}.Validate() = %v, want nil", err)
	}
}

func TestCodecIdentity(t *testing.T) {
	var c Codec
	if c.UID() != UID {
		t.Errorf("UID() = %q, want %q", c.UID(), UID)
	}
	if c.Name() != "ecm" {
		t.Errorf("Name() = %q, want %q", c.Name(), "ecm")
	}
}
